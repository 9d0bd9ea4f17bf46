// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request value populated by the
// configured binders, and returns a Response that renders itself:
//
//	create := handler.HandlerFunc[CreateRequest](func(ctx handler.Context, req CreateRequest) handler.Response {
//		return handler.JSON(http.StatusOK, result)
//	})
//	r.Post("/items", handler.Wrap(create, handler.WithBinder[CreateRequest](binder.BindJSON())))
//
// Binding and rendering failures go to the ErrorHandler. NewErrorHandler
// logs them and answers with a JSON body of the form {"error": "..."}.
package handler
