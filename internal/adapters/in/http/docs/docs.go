// Package docs registers the API document with swag so that echo-swagger can
// serve it under /swagger/.
package docs

import (
	"github.com/swaggo/swag"

	"marketplace/internal/adapters/in/http/openapi"
)

// SwaggerInfo holds the exported document metadata.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         "/api/v1",
	Title:            "Marketplace moderation API",
	Description:      "Order lifecycle and product moderation for a marketplace producer session.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  string(openapi.Document()),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
