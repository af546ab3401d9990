// Package docs registers the Swagger 2.0 description of the HTTP API with swag
// so that echo-swagger can serve it under /swagger/.
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
        "/api/v1/couriers": {
            "get": {
                "produces": ["application/json"],
                "summary": "List all couriers",
                "operationId": "GetCouriers",
                "responses": {
                    "200": {
                        "description": "Couriers sorted by name",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Courier"}}
                    },
                    "500": {"description": "Error", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Register a courier at a random location",
                "operationId": "CreateCourier",
                "parameters": [
                    {"name": "courier", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NewCourier"}}
                ],
                "responses": {
                    "201": {"description": "Courier registered", "schema": {"$ref": "#/definitions/Created"}},
                    "400": {"description": "Invalid courier", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/couriers/{courierId}/storage-places": {
            "post": {
                "consumes": ["application/json"],
                "summary": "Add a storage place to a courier",
                "operationId": "AddStoragePlace",
                "parameters": [
                    {"name": "courierId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "place", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NewStoragePlace"}}
                ],
                "responses": {
                    "201": {"description": "Storage place added"},
                    "400": {"description": "Invalid storage place", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Courier not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/orders": {
            "post": {
                "produces": ["application/json"],
                "summary": "Create an order at a random location",
                "operationId": "CreateOrder",
                "responses": {
                    "201": {"description": "Order created", "schema": {"$ref": "#/definitions/Created"}},
                    "409": {"description": "Order already exists", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/orders/active": {
            "get": {
                "produces": ["application/json"],
                "summary": "List orders that are not completed",
                "operationId": "GetOrders",
                "responses": {
                    "200": {
                        "description": "Orders, oldest first",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Order"}}
                    },
                    "500": {"description": "Error", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "definitions": {
        "Location": {
            "type": "object",
            "required": ["x", "y"],
            "properties": {
                "x": {"type": "integer", "minimum": 1, "maximum": 10},
                "y": {"type": "integer", "minimum": 1, "maximum": 10}
            }
        },
        "Courier": {
            "type": "object",
            "required": ["id", "name", "location"],
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "location": {"$ref": "#/definitions/Location"}
            }
        },
        "NewCourier": {
            "type": "object",
            "required": ["name", "speed"],
            "properties": {
                "name": {"type": "string"},
                "speed": {"type": "integer", "minimum": 1}
            }
        },
        "NewStoragePlace": {
            "type": "object",
            "required": ["name", "totalVolume"],
            "properties": {
                "name": {"type": "string"},
                "totalVolume": {"type": "integer", "minimum": 1}
            }
        },
        "Order": {
            "type": "object",
            "required": ["id", "location", "status"],
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "location": {"$ref": "#/definitions/Location"},
                "status": {"type": "string", "enum": ["Created", "Assigned"]}
            }
        },
        "Created": {
            "type": "object",
            "required": ["id"],
            "properties": {"id": {"type": "string", "format": "uuid"}}
        },
        "Error": {
            "type": "object",
            "required": ["code", "message"],
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Dispatch",
	Description:      "Assigns delivery orders to couriers and tracks them until delivery.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
