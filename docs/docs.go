// Package docs holds the OpenAPI description served under /swagger/.
// Regenerate with: swag init -g cmd/app/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/recipes/generate": {
            "post": {
                "tags": ["recipes"],
                "summary": "Generate recipes",
                "parameters": [
                    {"type": "string", "name": "X-User-ID", "in": "header", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/generator.Request"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/api/v1/recipes/complete": {
            "post": {
                "tags": ["recipes"],
                "summary": "Complete recipe",
                "parameters": [
                    {"type": "string", "name": "X-User-ID", "in": "header", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/history": {
            "get": {"tags": ["history"], "summary": "Recipe history", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["history"], "summary": "Clear history", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/history/weeks": {
            "get": {"tags": ["history"], "summary": "Recipe history by week", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/history/{index}": {
            "delete": {
                "tags": ["history"],
                "summary": "Delete history entry",
                "parameters": [{"type": "integer", "name": "index", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/history/recipes/{id}": {
            "delete": {
                "tags": ["history"],
                "summary": "Delete history entry by recipe id",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/metrics": {
            "get": {"tags": ["metrics"], "summary": "Current weekly metrics", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/metrics/history": {
            "get": {"tags": ["metrics"], "summary": "Archived weekly metrics", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/metrics/reset": {
            "post": {"tags": ["metrics"], "summary": "Reset weekly metrics", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/favorites": {
            "get": {"tags": ["favorites"], "summary": "List favorites", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["favorites"], "summary": "Save favorite", "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/favorites/{id}": {
            "delete": {
                "tags": ["favorites"],
                "summary": "Delete favorite",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/ingredients": {
            "get": {
                "tags": ["ingredients"],
                "summary": "List ingredients",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/ingredients/categories": {
            "get": {"tags": ["ingredients"], "summary": "List ingredient categories", "responses": {"200": {"description": "OK"}}}
        },
        "/healthz": {
            "get": {"tags": ["health"], "summary": "Liveness check", "responses": {"200": {"description": "OK"}}}
        },
        "/readyz": {
            "get": {"tags": ["health"], "summary": "Readiness check", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/version": {
            "get": {"tags": ["health"], "summary": "Build information", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "generator.Request": {
            "type": "object",
            "properties": {
                "ingredients": {"type": "array", "items": {"type": "string"}},
                "portions": {"type": "integer", "minimum": 1, "maximum": 10},
                "days": {"type": "integer", "minimum": 1, "maximum": 7},
                "diet": {"type": "string"},
                "skill": {"type": "string", "enum": ["beginner", "intermediate", "advanced"]},
                "allergies": {"type": "array", "items": {"type": "string"}},
                "maxCookingTime": {"type": "integer", "minimum": 1, "maximum": 180}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Platify Core API",
	Description:      "Recipe history, weekly usage metrics and favorites for the Platify app.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
