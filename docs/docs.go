package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Taskflow API Documentation",
        "title": "Taskflow API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/tasks": {
            "post": {
                "tags": ["Tasks"],
                "summary": "Create task",
                "description": "Create a task; status starts as pending, business rules run before it is stored",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "task",
                        "description": "Task data",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "required": ["title"],
                            "properties": {
                                "title": {"type": "string", "maxLength": 100},
                                "description": {"type": "string", "maxLength": 500},
                                "priority": {"type": "string", "enum": ["low", "medium", "high", "urgent"]},
                                "estimated_hours": {"type": "number", "minimum": 0.1, "maximum": 100},
                                "due_date": {"type": "string", "format": "date-time"}
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {"description": "Task created"},
                    "422": {"description": "Validation failed"}
                }
            },
            "get": {
                "tags": ["Tasks"],
                "summary": "List tasks",
                "description": "List tasks with optional filters; urgent tasks sort first, newest first within each group",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "status", "type": "string", "enum": ["pending", "in_progress", "completed", "cancelled"]},
                    {"in": "query", "name": "priority", "type": "string", "enum": ["low", "medium", "high", "urgent"]},
                    {"in": "query", "name": "overdue_only", "type": "boolean"},
                    {"in": "query", "name": "limit", "type": "integer", "minimum": 1, "maximum": 1000, "default": 100}
                ],
                "responses": {
                    "200": {"description": "Ordered list of tasks"},
                    "422": {"description": "Invalid filter or limit"}
                }
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete all tasks",
                "description": "Clear the whole store; blocked by in-progress tasks unless force=true",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "force", "type": "boolean", "default": false}
                ],
                "responses": {
                    "200": {"description": "Count of deleted tasks"},
                    "400": {"description": "In-progress tasks block deletion"}
                }
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Get task",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Task record"},
                    "404": {"description": "Task not found"}
                }
            },
            "put": {
                "tags": ["Tasks"],
                "summary": "Update task",
                "description": "Partial update; fields absent from the patch are left unchanged",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {
                        "in": "body",
                        "name": "patch",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "title": {"type": "string", "maxLength": 100},
                                "description": {"type": "string", "maxLength": 500},
                                "priority": {"type": "string", "enum": ["low", "medium", "high", "urgent"]},
                                "status": {"type": "string", "enum": ["pending", "in_progress", "completed", "cancelled"]},
                                "estimated_hours": {"type": "number", "minimum": 0.1, "maximum": 100},
                                "actual_hours": {"type": "number", "minimum": 0, "maximum": 200},
                                "due_date": {"type": "string", "format": "date-time"}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "Updated task"},
                    "400": {"description": "Invalid status transition"},
                    "404": {"description": "Task not found"},
                    "422": {"description": "Validation failed"}
                }
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete task",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Task deleted"},
                    "400": {"description": "Task is in progress"},
                    "404": {"description": "Task not found"}
                }
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Taskflow API",
	Description:      "Taskflow API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
