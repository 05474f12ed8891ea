package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "PrepNerdz Resource API",
        "description": "Study resources by branch, semester and subject: listing, search and bookmarks.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Resources", "description": "Resource listing, search and upload"},
        {"name": "Taxonomy", "description": "Branch and semester identifier lookups"},
        {"name": "Session", "description": "Session status for the current request"},
        {"name": "Bookmarks", "description": "Per-user bookmarks"}
    ],
    "paths": {
        "/resource": {
            "get": {
                "tags": ["Resources"],
                "summary": "List resources of a type",
                "parameters": [
                    {"name": "type", "in": "query", "required": true, "type": "string", "enum": ["BOOK", "SHIVANI_BOOKS", "MID_SEM_PAPER", "END_SEM_PAPER", "IMP_QUESTION", "IMP_TOPIC", "NOTES", "SYLLABUS", "LAB_MANUAL"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Resource"}}},
                    "400": {"description": "Unknown type", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/resource/recent": {
            "get": {
                "tags": ["Resources"],
                "summary": "Newest resources across types",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer", "default": 10, "maximum": 50}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Resource"}}}
                }
            }
        },
        "/resource/{id}": {
            "get": {
                "tags": ["Resources"],
                "summary": "Show a resource",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Resource"}},
                    "404": {"description": "Unknown resource", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/resource/add": {
            "post": {
                "tags": ["Resources"],
                "summary": "Add resource metadata (admin)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddResourceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResourceCreated"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/Failure"}},
                    "401": {"description": "No session", "schema": {"$ref": "#/definitions/Failure"}},
                    "403": {"description": "Not an admin", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/search": {
            "get": {
                "tags": ["Resources"],
                "summary": "Paginated faceted search",
                "parameters": [
                    {"name": "type", "in": "query", "type": "string"},
                    {"name": "branch", "in": "query", "type": "string", "description": "Branch id"},
                    {"name": "semester", "in": "query", "type": "string", "description": "Semester id"},
                    {"name": "query", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer", "default": 1},
                    {"name": "limit", "in": "query", "type": "integer", "default": 5, "maximum": 50}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SearchPage"}}
                }
            }
        },
        "/getmyid/branchid": {
            "get": {
                "tags": ["Taxonomy"],
                "summary": "Resolve a branch code",
                "parameters": [
                    {"name": "branchName", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"branchId": {"type": "string"}}}},
                    "404": {"description": "Unknown branch", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/getmyid/semesterid": {
            "get": {
                "tags": ["Taxonomy"],
                "summary": "Resolve a semester number",
                "parameters": [
                    {"name": "semNumber", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"semesterId": {"type": "string"}}}},
                    "404": {"description": "Unknown semester", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/auth/user/session": {
            "get": {
                "tags": ["Session"],
                "summary": "Session status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SessionResponse"}}
                }
            }
        },
        "/bookmark/user/{userId}": {
            "get": {
                "tags": ["Bookmarks"],
                "summary": "List a user's bookmarks",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/BookmarkList"}},
                    "401": {"description": "No session", "schema": {"$ref": "#/definitions/Failure"}},
                    "403": {"description": "Another user's bookmarks", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/bookmark": {
            "post": {
                "tags": ["Bookmarks"],
                "summary": "Bookmark a resource",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookmarkRequest"}}
                ],
                "responses": {
                    "200": {"description": "Acknowledged; success is false when already bookmarked", "schema": {"$ref": "#/definitions/Ack"}}
                }
            },
            "delete": {
                "tags": ["Bookmarks"],
                "summary": "Remove a bookmark",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookmarkRequest"}}
                ],
                "responses": {
                    "200": {"description": "Acknowledged; success is false when not bookmarked", "schema": {"$ref": "#/definitions/Ack"}}
                }
            }
        }
    },
    "definitions": {
        "Resource": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "year": {"type": "string"},
                "month": {"type": "string"},
                "fileUrl": {"type": "string"},
                "fileSize": {"type": "integer"},
                "fileType": {"type": "string"},
                "subjectId": {"type": "string"},
                "uploadedById": {"type": "string"},
                "verified": {"type": "boolean"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"},
                "subject": {"type": "object"},
                "uploadedBy": {"type": "object", "properties": {"username": {"type": "string"}}}
            }
        },
        "AddResourceRequest": {
            "type": "object",
            "required": ["type", "title", "fileUrl", "fileType", "subjectId"],
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "year": {"type": "string"},
                "month": {"type": "string"},
                "fileUrl": {"type": "string"},
                "fileSize": {"type": "integer"},
                "fileType": {"type": "string"},
                "subjectId": {"type": "string"}
            }
        },
        "ResourceCreated": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"$ref": "#/definitions/Resource"}
            }
        },
        "SearchPage": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Resource"}},
                "total": {"type": "integer"},
                "hasMore": {"type": "boolean"}
            }
        },
        "SessionResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "object",
                    "properties": {
                        "isAuthenticated": {"type": "boolean"},
                        "user": {"type": "object", "properties": {"id": {"type": "string"}, "username": {"type": "string"}, "role": {"type": "string"}}}
                    }
                }
            }
        },
        "BookmarkRequest": {
            "type": "object",
            "required": ["userId", "resourceId"],
            "properties": {
                "userId": {"type": "string"},
                "resourceId": {"type": "string"}
            }
        },
        "BookmarkList": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "array", "items": {"type": "object"}},
                "count": {"type": "integer"}
            }
        },
        "Ack": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "Failure": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "code": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
