// Package docs holds the swagger spec registered for the /swagger/ UI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/map/markers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Map"],
                "summary": "List markers",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/map/pins": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Map"],
                "summary": "List projected map pins",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/locale": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Locale"],
                "summary": "Current display locale",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Locale"],
                "summary": "Change display locale",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "RESCUE ADMIN CONSOLE API",
	Description:      "Administrative console for the search-and-rescue coordination platform",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
