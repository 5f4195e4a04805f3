// Package api handles incoming HTTP requests for the user collection:
// routing, request decoding and validation, and response formatting. It
// translates HTTP concerns into calls on service.UserService and maps the
// service's errors to status codes and safe client messages.
package api
