// Package docs holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o internal/docs
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
		"/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Inicio de sesión",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/auth/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Registro de usuario",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/auth/validar-sesion": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Validar sesión",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/auth/update-user": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Actualizar usuario",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/auth/change-password": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Cambiar contraseña (administrador)",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/auth/usuarios": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Listar usuarios",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/auth/send-email-recovery": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Enviar correo de recuperación",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/auth/reset-password-with-token": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Restablecer contraseña con token",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/lineas-de-investigacion/create": {
			"post": {
				"tags": [
					"lineas"
				],
				"summary": "Crear línea de investigación",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/lineas-de-investigacion/update": {
			"post": {
				"tags": [
					"lineas"
				],
				"summary": "Actualizar línea de investigación",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/lineas-de-investigacion/get-all": {
			"get": {
				"tags": [
					"lineas"
				],
				"summary": "Listar líneas de investigación",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/periodo/create": {
			"post": {
				"tags": [
					"periodos"
				],
				"summary": "Crear periodo académico",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/periodo/update": {
			"put": {
				"tags": [
					"periodos"
				],
				"summary": "Actualizar periodo académico",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/periodo/get-all": {
			"get": {
				"tags": [
					"periodos"
				],
				"summary": "Listar periodos académicos",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/trabajos/create": {
			"post": {
				"tags": [
					"trabajos"
				],
				"summary": "Crear trabajo de investigación",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/trabajos/update": {
			"post": {
				"tags": [
					"trabajos"
				],
				"summary": "Actualizar trabajo de investigación",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/trabajos/get-all": {
			"get": {
				"tags": [
					"trabajos"
				],
				"summary": "Listar trabajos",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/trabajos/get-by-id/{id}": {
			"get": {
				"tags": [
					"trabajos"
				],
				"summary": "Obtener trabajo por id",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/search/main": {
			"get": {
				"tags": [
					"busqueda"
				],
				"summary": "Búsqueda de trabajos",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/filters/search": {
			"get": {
				"tags": [
					"busqueda"
				],
				"summary": "Búsqueda pública de trabajos",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/estadisticas/generar": {
			"post": {
				"tags": [
					"estadisticas"
				],
				"summary": "Recalcular estadísticas por línea",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/estadisticas/get-all": {
			"get": {
				"tags": [
					"estadisticas"
				],
				"summary": "Obtener estadísticas",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/reportes/generar": {
			"post": {
				"tags": [
					"reportes"
				],
				"summary": "Generar reporte de trabajos",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/health": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Estado del servicio",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/health/metrics": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Métricas del proceso en JSON",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "",
	BasePath:		 "/",
	Schemes:		  []string{},
	Title:			"Investigación API",
	Description:	  "Gestión de líneas de investigación, periodos académicos y trabajos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
