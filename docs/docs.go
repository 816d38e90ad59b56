// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g main.go
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
        "/search": {
            "post": {
                "description": "Runs a free-text location query (ZIP code, ZIP list, state code or \"City ST\") and returns status updates, the reply text and the optional CSV export.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "Find gas stations",
                "parameters": [
                    {
                        "description": "Location query",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/search.Request"}
                    }
                ],
                "responses": {
                    "200": {"description": "Search result", "schema": {"$ref": "#/definitions/types.HandleResult"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/api.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        },
        "/search/export": {
            "get": {
                "description": "Runs the query in q and returns the horizontal CSV as an attachment.",
                "produces": ["text/csv"],
                "tags": ["Search"],
                "summary": "Download the CSV export",
                "parameters": [
                    {"type": "string", "description": "Location query", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "CSV export", "schema": {"type": "file"}},
                    "400": {"description": "Missing query", "schema": {"$ref": "#/definitions/api.Response"}},
                    "404": {"description": "No stations found", "schema": {"$ref": "#/definitions/api.Response"}}
                }
            }
        }
    },
    "definitions": {
        "api.Response": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "request_id": {"type": "string"},
                "search_id": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "search.Request": {
            "type": "object",
            "required": ["query"],
            "properties": {
                "query": {"type": "string", "maxLength": 256}
            }
        },
        "types.ExportFile": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "format": "byte"},
                "content_type": {"type": "string"},
                "filename": {"type": "string"}
            }
        },
        "types.HandleResult": {
            "type": "object",
            "properties": {
                "export": {"$ref": "#/definitions/types.ExportFile"},
                "final_text": {"type": "string"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/types.QueryResult"}},
                "status_updates": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.Query": {
            "type": "object",
            "properties": {
                "city": {"type": "string"},
                "key": {"type": "string"},
                "kind": {"type": "string", "enum": ["zip", "state", "citystate", "unrecognized"]},
                "raw": {"type": "string"},
                "state": {"type": "string"}
            }
        },
        "types.QueryResult": {
            "type": "object",
            "properties": {
                "cache_hit": {"type": "boolean"},
                "location_label": {"type": "string"},
                "not_found": {"type": "boolean"},
                "query": {"$ref": "#/definitions/types.Query"},
                "stations": {"type": "array", "items": {"$ref": "#/definitions/types.StationRecord"}}
            }
        },
        "types.StationRecord": {
            "type": "object",
            "properties": {
                "city": {"type": "string"},
                "full_address": {"type": "string"},
                "hours_today": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "place_id": {"type": "string"},
                "postal_code": {"type": "string"},
                "price_level": {"type": "integer"},
                "rating": {"type": "number"},
                "rating_count": {"type": "integer"},
                "state": {"type": "string"},
                "street_address": {"type": "string"},
                "website": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Gas Station Finder API",
	Description:      "Find nearby gas stations by ZIP code, state or city.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
