package managing

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/gookit/validate"

	"github.com/Chelsea-799/ga4-analytics-tool/internal/domain"
)

func init() {
	validate.AddValidator("customerID", func(val any) bool {
		return domain.IsCustomerID(toString(val))
	})
	validate.AddValidator("digitsOnly", func(val any) bool {
		return domain.IsDigits(toString(val))
	})
	validate.AddValidator("accessLevel", func(val any) bool {
		return domain.AccessLevel(toString(val)).IsValid()
	})

	validate.AddGlobalMessages(map[string]string{
		"customerID":  "{field} deve ter exatamente 10 dígitos",
		"digitsOnly":  "{field} deve conter apenas dígitos",
		"accessLevel": "{field} deve ser test ou standard",
	})
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprint(val)
}

// validateStruct devolve um erro de validação com o nome JSON do primeiro campo inválido.
func validateStruct(s any) *domain.ReportError {
	v := validate.Struct(s)
	if v.Validate() {
		return nil
	}

	fields := make([]string, 0, len(v.Errors))
	for field := range v.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	field := fields[0]

	code := domain.CodeInvalidField
	if _, missing := v.Errors.Field(field)["required"]; missing {
		code = domain.CodeMissingField
	}

	name := jsonName(s, field)
	if name == "customer_id" || name == "manager_customer_id" {
		code = domain.CodeInvalidAccountID
	}

	return domain.NewValidationError(name, code, v.Errors.FieldOne(field))
}

func validateCredential(cred *domain.StoreCredential) *domain.ReportError {
	if err := validateStruct(cred); err != nil {
		return err
	}
	if cred.HasManager() && cred.ManagerCustomerID == cred.CustomerID {
		return domain.NewValidationError("manager_customer_id", domain.CodeInvalidAccountID, ErrSameManagerCustomer.Error())
	}
	return nil
}

// jsonName traduz o nome do campo Go para a tag json; nomes já em json passam direto.
func jsonName(s any, field string) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return field
	}

	sf, ok := t.FieldByName(field)
	if !ok {
		return field
	}

	tag := strings.Split(sf.Tag.Get("json"), ",")[0]
	if tag == "" || tag == "-" {
		return field
	}
	return tag
}
