package requests

import (
	"fmt"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dealermate/dealermate-server/pkg/toolvalue"
)

const maxToolNameLength = 128

// CallToolRequest is the body of POST /tool/call.
type CallToolRequest struct {
	Tool string          `json:"tool" binding:"required,toolname" example:"inventory.search_listings"`
	Args toolvalue.Value `json:"args" swaggertype:"object"`
}

// RegisterValidations installs the custom rules on gin's validator engine.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("toolname", validateToolName)
}

// validateToolName accepts printable names without whitespace. Whether the
// name is routable is decided by the registry, not here.
func validateToolName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || len(name) > maxToolNameLength {
		return false
	}
	for _, r := range name {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
