package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Grom-Hilbert/lyra-sub002/pkg/apperror"
)

// CustomValidator はEcho用のカスタムバリデーターです
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator は新しいCustomValidatorを作成します
func NewCustomValidator() *CustomValidator {
	v := validator.New()

	// カスタムバリデーション登録
	v.RegisterValidation("rolecode", validateRoleCode)
	v.RegisterValidation("permissioncode", validatePermissionCode)

	return &CustomValidator{validator: v}
}

// Validate はリクエストを検証します
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return cv.formatValidationErrors(err)
	}
	return nil
}

// formatValidationErrors はバリデーションエラーをフォーマットします
func (cv *CustomValidator) formatValidationErrors(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.NewValidationError(err.Error(), nil)
	}

	details := make([]apperror.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, apperror.FieldError{
			Field:   toSnakeCase(e.Field()),
			Message: getValidationMessage(e),
		})
	}

	return apperror.NewValidationError("validation failed", details)
}

// ロールコード: 英大文字始まり、英大文字・数字・アンダースコアのみ
var roleCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// 権限コード: 英小文字のセグメントをドットまたはコロンで連結 (例: file.read)
var permissionCodePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*([.:][a-z][a-z0-9_]*)*$`)

// validateRoleCode はロールコードのバリデーション
func validateRoleCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	return code != "" && len(code) <= 64 && roleCodePattern.MatchString(code)
}

// validatePermissionCode は権限コードのバリデーション
func validatePermissionCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	return code != "" && len(code) <= 128 && permissionCodePattern.MatchString(code)
}

// getValidationMessage はバリデーションエラーメッセージを返します
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "uuid":
		return "must be a valid UUID"
	case "rolecode":
		return "must be an uppercase role code (letters, digits, underscores)"
	case "permissioncode":
		return "must be a valid permission code (e.g. file.read)"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "validation failed"
	}
}

// toSnakeCase はPascalCase/camelCaseをsnake_caseに変換します
func toSnakeCase(str string) string {
	var result []rune
	for i, r := range str {
		if i > 0 && 'A' <= r && r <= 'Z' {
			result = append(result, '_')
		}
		result = append(result, r)
	}
	return strings.ToLower(string(result))
}
