// Package docs holds the OpenAPI document served at /swagger.
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
        "/health": {
            "get": {
                "description": "Returns the health status of the API",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check endpoint",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pattern": {
            "get": {
                "description": "Runs the pattern generator and returns the evaluated steps",
                "produces": ["application/json"],
                "tags": ["pattern"],
                "summary": "Generate a pattern",
                "parameters": [
                    {"type": "string", "description": "drums or euclidean", "name": "mode", "in": "query"},
                    {"type": "integer", "description": "Map X (0-255)", "name": "x", "in": "query"},
                    {"type": "integer", "description": "Map Y (0-255)", "name": "y", "in": "query"},
                    {"type": "integer", "description": "Randomness (0-255)", "name": "randomness", "in": "query"},
                    {"type": "string", "description": "Densities as a,b,c", "name": "density", "in": "query"},
                    {"type": "string", "description": "Euclidean lengths as a,b,c", "name": "length", "in": "query"},
                    {"type": "integer", "description": "Tempo", "name": "bpm", "in": "query"},
                    {"type": "integer", "description": "Bars to render", "name": "bars", "in": "query"},
                    {"type": "integer", "description": "Random seed", "name": "seed", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/render/midi": {
            "post": {
                "description": "Renders a patch to a Standard MIDI File",
                "consumes": ["application/json"],
                "produces": ["audio/midi"],
                "tags": ["render"],
                "summary": "Render MIDI",
                "parameters": [
                    {"type": "string", "description": "Note map (gm, tr8s, rd6, custom)", "name": "device", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/render/wav": {
            "post": {
                "description": "Renders the digital oscillator to a WAV file",
                "consumes": ["application/json"],
                "produces": ["audio/wav"],
                "tags": ["render"],
                "summary": "Render WAV",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/euclidean": {
            "get": {
                "description": "Returns the euclidean pattern for a length and density",
                "produces": ["application/json"],
                "tags": ["pattern"],
                "summary": "Euclidean pattern",
                "parameters": [
                    {"type": "integer", "description": "Length (1-32)", "name": "length", "in": "query", "required": true},
                    {"type": "integer", "description": "Density level (0-31)", "name": "density", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/devices": {
            "get": {
                "description": "Returns the available drum note maps",
                "produces": ["application/json"],
                "tags": ["info"],
                "summary": "List devices",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/formats": {
            "get": {
                "description": "Returns the supported file formats and conversions",
                "produces": ["application/json"],
                "tags": ["info"],
                "summary": "List formats",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/settings/syx": {
            "post": {
                "description": "Encodes the settings of a patch as a SysEx dump",
                "consumes": ["application/json"],
                "produces": ["application/octet-stream"],
                "tags": ["settings"],
                "summary": "Settings SysEx dump",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/convert": {
            "post": {
                "description": "Converts an uploaded file between formats",
                "consumes": ["multipart/form-data"],
                "produces": ["application/octet-stream"],
                "tags": ["convert"],
                "summary": "Convert a file",
                "parameters": [
                    {"type": "file", "description": "File to convert", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Target format", "name": "to", "in": "query", "required": true},
                    {"type": "string", "description": "Target note map", "name": "device", "in": "query"},
                    {"type": "string", "description": "Source note map", "name": "source", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Grids2MIDI API",
	Description:      "API for generating Grids drum patterns and exporting them as MIDI, WAV and SysEx",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
