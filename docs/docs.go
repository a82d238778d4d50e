// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with `go generate ./cmd/server`.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "注册",
                "parameters": [
                    {"description": "注册信息", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/register.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/user.PublicUser"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "登录",
                "parameters": [
                    {"description": "登录信息", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/login.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/login.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["认证"],
                "summary": "获取当前用户信息",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.PublicUser"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/validate/email": {
            "get": {
                "produces": ["application/json"],
                "tags": ["校验"],
                "summary": "检查邮箱是否已注册",
                "parameters": [{"type": "string", "description": "邮箱", "name": "email", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/validate.UniquenessResponse"}}}
            }
        },
        "/validate/username": {
            "get": {
                "produces": ["application/json"],
                "tags": ["校验"],
                "summary": "检查用户名是否已占用",
                "parameters": [{"type": "string", "description": "用户名", "name": "username", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/validate.UniquenessResponse"}}}
            }
        },
        "/exercises": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["练习"],
                "summary": "练习列表",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/exercise.ExerciseView"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["练习"],
                "summary": "创建练习",
                "parameters": [
                    {"description": "练习内容", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/exercise.CreateExerciseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/exercise.ExerciseView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/exercises/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["练习"],
                "summary": "获取练习",
                "parameters": [{"type": "string", "description": "练习ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/exercise.ExerciseView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["练习"],
                "summary": "更新练习",
                "parameters": [
                    {"type": "string", "description": "练习ID", "name": "id", "in": "path", "required": true},
                    {"description": "更新内容", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/exercise.UpdateExerciseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/exercise.ExerciseView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["练习"],
                "summary": "更新练习",
                "parameters": [
                    {"type": "string", "description": "练习ID", "name": "id", "in": "path", "required": true},
                    {"description": "更新内容", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/exercise.UpdateExerciseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/exercise.ExerciseView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["练习"],
                "summary": "删除练习",
                "parameters": [{"type": "string", "description": "练习ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/exercises/{id}/sentences": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["练习"],
                "summary": "追加句子/题目",
                "parameters": [
                    {"type": "string", "description": "练习ID", "name": "id", "in": "path", "required": true},
                    {"description": "子项列表", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/exercise.AddSentencesRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "array", "items": {"type": "object"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"}
            }
        },
        "user.PublicUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["user", "admin"]}
            }
        },
        "register.RegisterRequest": {
            "type": "object",
            "required": ["username", "email", "password"],
            "properties": {
                "username": {"type": "string", "example": "ana"},
                "email": {"type": "string", "example": "ana@example.com"},
                "password": {"type": "string", "example": "pw123456"}
            }
        },
        "login.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "ana@example.com"},
                "password": {"type": "string", "example": "pw123456"}
            }
        },
        "login.LoginResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string", "example": "bearer"}
            }
        },
        "validate.UniquenessResponse": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "value": {"type": "string"},
                "is_unique": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "exercise.FillGapItem": {
            "type": "object",
            "properties": {
                "sentence": {"type": "string", "example": "I ___ happy."},
                "correctAnswer": {"type": "string", "example": "am"}
            }
        },
        "exercise.MultipleChoiceItem": {
            "type": "object",
            "properties": {
                "question": {"type": "string"},
                "choices": {"type": "array", "items": {"type": "string"}},
                "correctIndex": {"type": "integer"}
            }
        },
        "exercise.CreateExerciseRequest": {
            "type": "object",
            "required": ["title", "type"],
            "properties": {
                "title": {"type": "string", "maxLength": 200, "example": "Verbs"},
                "description": {"type": "string", "maxLength": 2000},
                "type": {"type": "string", "enum": ["fill-gap", "multiple-choice"]},
                "fillGapSentences": {"type": "array", "items": {"$ref": "#/definitions/exercise.FillGapItem"}},
                "multipleChoiceQuestions": {"type": "array", "items": {"$ref": "#/definitions/exercise.MultipleChoiceItem"}}
            }
        },
        "exercise.UpdateExerciseRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "description": {"type": "string", "maxLength": 2000}
            }
        },
        "exercise.AddSentencesRequest": {
            "type": "object",
            "required": ["sentences"],
            "properties": {
                "sentences": {"type": "array", "items": {"type": "object"}}
            }
        },
        "exercise.ExerciseView": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "type": {"type": "string", "enum": ["fill-gap", "multiple-choice"]},
                "fillGapSentences": {"type": "array", "items": {"type": "object"}},
                "multipleChoiceQuestions": {"type": "array", "items": {"type": "object"}},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Exercise Service API",
	Description:      "Language-learning exercise management backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
