// Package lambdautil builds API Gateway proxy responses: JSON bodies,
// CORS headers, and the error-to-status mapping from fault.
package lambdautil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/aerodex/manifest/fault"
)

func corsHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,Authorization",
		"Access-Control-Allow-Methods": "GET,OPTIONS",
	}
}

// OK returns a 200 response with body marshaled as JSON.
func OK(body any) (events.APIGatewayProxyResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return Error(fault.System("failed to encode response", err)), nil
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    corsHeaders(),
		Body:       string(payload),
	}, nil
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error maps an error to an API Gateway response using the fault
// taxonomy. System error details stay out of the body; clients get a
// generic message and operators get the log line.
func Error(err error) events.APIGatewayProxyResponse {
	status := fault.HTTPStatus(err)
	body := errorBody{
		Error:   fault.TypeOf(err),
		Message: err.Error(),
	}

	var validation *fault.ValidationError
	if errors.As(err, &validation) {
		body.Field = validation.Field
	}
	if status == http.StatusInternalServerError {
		body.Message = "An unexpected error occurred"
	}

	payload, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    corsHeaders(),
		Body:       string(payload),
	}
}

// QueryParam returns a query string parameter, or a ValidationError
// when required and absent.
func QueryParam(request events.APIGatewayProxyRequest, name string, required bool) (string, error) {
	value, ok := request.QueryStringParameters[name]
	if !ok || value == "" {
		if required {
			return "", fault.Validation(name, "Missing required query parameter: "+name)
		}
		return "", nil
	}
	return value, nil
}

// PathParam returns a path parameter, or a ValidationError when absent.
func PathParam(request events.APIGatewayProxyRequest, name string) (string, error) {
	value, ok := request.PathParameters[name]
	if !ok || value == "" {
		return "", fault.Validation(name, "Missing required path parameter: "+name)
	}
	return value, nil
}
