package identity

import (
	"errors"
	"net/http"

	dmn "github.com/beka-birhanu/vinom-backrooms/domain"
	"github.com/beka-birhanu/vinom-backrooms/service"
	"github.com/beka-birhanu/vinom-backrooms/service/i"
	"github.com/gin-gonic/gin"
)

// credentialErrors are the account rules a sign up can break.
var credentialErrors = []error{
	dmn.ErrUsernameTooShort,
	dmn.ErrUsernameTooLong,
	dmn.ErrInvalidUsername,
	dmn.ErrWeakPassword,
}

// DesignerController manages designer accounts: sign up, sign in and the profile
// behind the current token.
type DesignerController struct {
	accounts i.Authenticator
}

// NewDesignerController creates a DesignerController backed by accounts.
func NewDesignerController(accounts i.Authenticator) *DesignerController {
	return &DesignerController{accounts: accounts}
}

// RegisterPublic registers the sign up and sign in routes.
func (dc *DesignerController) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/register", dc.signUp)
		auth.POST("/login", dc.signIn)
	}
}

// RegisterProtected registers the profile route.
func (dc *DesignerController) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/auth/me", dc.profile)
}

func (dc *DesignerController) signUp(ctx *gin.Context) {
	creds, ok := bindCredentials(ctx)
	if !ok {
		return
	}

	switch err := dc.accounts.Register(creds.Username, creds.Password); {
	case err == nil:
		ctx.JSON(http.StatusCreated, gin.H{"message": "designer account created"})
	case errors.Is(err, dmn.ErrUsernameConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case isCredentialError(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not create the account"})
	}
}

func (dc *DesignerController) signIn(ctx *gin.Context) {
	creds, ok := bindCredentials(ctx)
	if !ok {
		return
	}

	designer, token, err := dc.accounts.SignIn(creds.Username, creds.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	case err != nil:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not sign in"})
		return
	}

	ctx.JSON(http.StatusOK, &SessionResponse{
		Designer: DesignerResponse{ID: designer.ID.String(), Username: designer.Username},
		Token:    token,
	})
}

// profile answers from the token claims alone, so it costs no lookup.
func (dc *DesignerController) profile(ctx *gin.Context) {
	id, err := UserID(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	username, _ := claim(ctx, "username")
	ctx.JSON(http.StatusOK, &DesignerResponse{ID: id.String(), Username: username})
}

func bindCredentials(ctx *gin.Context) (Credentials, bool) {
	var creds Credentials
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return creds, false
	}
	return creds, true
}

func isCredentialError(err error) bool {
	for _, target := range credentialErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
