// Package docs holds the generated swagger spec for the daemon's debug
// API surface. Normally produced by `swag init`; committed here by hand
// since the annotated handlers live in internal/debug.
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
        "/debug/routes": {
            "get": {
                "tags": ["debug"],
                "summary": "List active routes",
                "responses": {"200": {"description": "Active routes"}}
            }
        },
        "/debug/processes": {
            "get": {
                "tags": ["debug"],
                "summary": "List managed processes",
                "responses": {"200": {"description": "Managed processes"}}
            }
        },
        "/debug/projects": {
            "get": {
                "tags": ["debug"],
                "summary": "List projects",
                "responses": {"200": {"description": "Projects"}}
            }
        }
    }
}`

// SwaggerInfo holds exported swagger info for the daemon's debug API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "127.0.0.1:8081",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "proj daemon debug API",
	Description:      "Read-only diagnostics over the daemon's routing table, processes, and projects.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
