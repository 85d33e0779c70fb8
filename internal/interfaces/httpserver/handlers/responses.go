package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/janhq/jan-translator/internal/domain/auth"
	"github.com/janhq/jan-translator/internal/domain/backend"
	authmw "github.com/janhq/jan-translator/internal/infrastructure/auth"
)

// ValidationIssue is one entry of a 422 response.
type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

var fieldNamesOnce sync.Once

// registerFieldNames makes binding errors report JSON field names.
func registerFieldNames() {
	fieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.Split(f.Tag.Get(tag), ",")[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
}

func respondError(c *gin.Context, err error) {
	status, detail := backend.StatusOf(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func respondInvalid(c *gin.Context, issues ...ValidationIssue) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": issues})
}

func missing(location, field string) ValidationIssue {
	return ValidationIssue{Loc: []string{location, field}, Msg: "Field required", Type: "missing"}
}

// bindJSON decodes the body into req and answers 422 on failure.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		issues := make([]ValidationIssue, 0, len(verrs))
		for _, fe := range verrs {
			issues = append(issues, missing("body", fe.Field()))
		}
		respondInvalid(c, issues...)
		return false
	}
	respondInvalid(c, ValidationIssue{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"})
	return false
}

// pathID parses an integer path parameter and answers 422 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondInvalid(c, ValidationIssue{
			Loc:  []string{"path", name},
			Msg:  "Input should be a valid integer",
			Type: "int_parsing",
		})
		return 0, false
	}
	return id, true
}

// currentUser returns the authenticated user, answering 401 when absent.
func currentUser(c *gin.Context) (auth.User, bool) {
	user, ok := authmw.CurrentUser(c)
	if !ok {
		respondError(c, backend.ErrUnauthenticated)
	}
	return user, ok
}
