package service

import (
	"fmt"
	"strings"
)

type missingFields []string

func missingFieldsError(fields []string) error {
	return missingFields(fields)
}

func (m missingFields) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(m, ", "))
}
