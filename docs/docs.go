// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with go generate ./cmd after changing handler annotations.
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
        "/api/generate-invoice": {
            "post": {
                "description": "Groups CSV rows by client email, renders a PDF per client and emails it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Generate and send invoices",
                "parameters": [
                    {
                        "description": "CSV rows, field mapping and business info",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dispatch.Request"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dispatch.Summary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.errorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/server.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/server.errorResponse"}}
                }
            }
        },
        "/api/parse-csv": {
            "post": {
                "description": "Parses a CSV export sent as the request body or as a multipart file field named file.",
                "consumes": ["text/csv", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Parse a CSV export",
                "parameters": [
                    {"type": "file", "description": "CSV export", "name": "file", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/csvdata.Table"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.errorResponse"}}
                }
            }
        },
        "/api/batches/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "List the recorded outcomes of a dispatch batch",
                "parameters": [
                    {"type": "string", "description": "Batch ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/store.Dispatch"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/server.errorResponse"}},
                    "501": {"description": "Not Implemented", "schema": {"$ref": "#/definitions/server.errorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.healthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/server.healthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dispatch.Request": {
            "type": "object",
            "properties": {
                "csvData": {"type": "array", "items": {"type": "object", "additionalProperties": {"type": "string"}}},
                "fieldMapping": {"type": "object", "additionalProperties": {"type": "string"}},
                "businessInfo": {"$ref": "#/definitions/invoice.BusinessInfo"}
            }
        },
        "dispatch.Summary": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "sent": {"type": "integer"},
                "failed": {"type": "integer"},
                "batchId": {"type": "string"}
            }
        },
        "invoice.BusinessInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "address": {"type": "string"},
                "taxId": {"type": "string"}
            }
        },
        "csvdata.Table": {
            "type": "object",
            "properties": {
                "headers": {"type": "array", "items": {"type": "string"}},
                "rows": {"type": "array", "items": {"type": "object", "additionalProperties": {"type": "string"}}}
            }
        },
        "store.Dispatch": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "batchId": {"type": "string"},
                "clientEmail": {"type": "string"},
                "clientName": {"type": "string"},
                "itemCount": {"type": "integer"},
                "total": {"type": "string"},
                "status": {"type": "string"},
                "error": {"type": "string"},
                "archiveKey": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "server.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "server.healthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "checks": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SheetInvoicer API",
	Description:      "Turn spreadsheet rows into per-client PDF invoices and email them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
