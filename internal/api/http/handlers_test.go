package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vadimbarashkov/linknest/internal/database"
	"github.com/vadimbarashkov/linknest/internal/models"
	"github.com/vadimbarashkov/linknest/internal/service"
	"github.com/vadimbarashkov/linknest/pkg/response"
)

const testAccessToken = "valid-access-token"

type HandlersTestSuite struct {
	suite.Suite
	logger       *httplog.Logger
	callerID     uuid.UUID
	authMock     *MockAuthService
	orgMock      *MockOrganizationService
	nsMock       *MockNamespaceService
	urlMock      *MockURLService
	inviteMock   *MockInviteService
	server       *httptest.Server
	e            *httpexpect.Expect
}

func (suite *HandlersTestSuite) SetupSuite() {
	suite.logger = httplog.NewLogger("", httplog.Options{Writer: io.Discard})
	suite.callerID = uuid.New()
}

func (suite *HandlersTestSuite) SetupSubTest() {
	suite.authMock = new(MockAuthService)
	suite.orgMock = new(MockOrganizationService)
	suite.nsMock = new(MockNamespaceService)
	suite.urlMock = new(MockURLService)
	suite.inviteMock = new(MockInviteService)

	router := NewRouter(suite.logger, Services{
		Auth:          suite.authMock,
		Organizations: suite.orgMock,
		Namespaces:    suite.nsMock,
		URLs:          suite.urlMock,
		Invites:       suite.inviteMock,
	})
	suite.server = httptest.NewServer(router)
	suite.e = httpexpect.Default(suite.T(), suite.server.URL)
}

func (suite *HandlersTestSuite) TearDownSubTest() {
	suite.authMock.AssertExpectations(suite.T())
	suite.orgMock.AssertExpectations(suite.T())
	suite.nsMock.AssertExpectations(suite.T())
	suite.urlMock.AssertExpectations(suite.T())
	suite.inviteMock.AssertExpectations(suite.T())
	suite.server.Close()
}

// expectAuth makes the bearer token resolve to the suite's caller.
func (suite *HandlersTestSuite) expectAuth() {
	suite.authMock.
		On("Authenticate", mock.Anything, testAccessToken).
		Return(suite.callerID, nil)
}

func (suite *HandlersTestSuite) authHeader() string {
	return "Bearer " + testAccessToken
}

func (suite *HandlersTestSuite) TestPing() {
	const path = "/api/v1/ping"

	suite.Run("success", func() {
		suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			Text().IsEqual("pong\n")
	})
}

func (suite *HandlersTestSuite) TestRegister() {
	const path = "/api/v1/auth/register"

	suite.Run("empty request body", func() {
		suite.e.POST(path).
			WithHeader("Content-Type", "application/json").
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.EmptyRequestBodyResponse.Message)
	})

	suite.Run("validation error", func() {
		suite.e.POST(path).
			WithJSON(map[string]string{
				"email":    "not-an-email",
				"password": "short",
			}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			ContainsKey("details")
	})

	suite.Run("email taken", func() {
		suite.authMock.
			On("Register", mock.Anything, "user@example.com", "password123").
			Once().
			Return(nil, false, database.ErrUserExists)

		suite.e.POST(path).
			WithJSON(map[string]string{
				"email":    "user@example.com",
				"password": "password123",
			}).
			Expect().
			Status(http.StatusConflict).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ConflictResponse.Message)
	})

	suite.Run("success", func() {
		suite.authMock.
			On("Register", mock.Anything, "user@example.com", "password123").
			Once().
			Return(&models.User{
				ID:    suite.callerID,
				Email: "user@example.com",
			}, true, nil)

		suite.e.POST(path).
			WithJSON(map[string]string{
				"email":    "user@example.com",
				"password": "password123",
			}).
			Expect().
			Status(http.StatusCreated).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			Value("data").Object().
			HasValue("email_sent", true).
			Value("user").Object().
			HasValue("email", "user@example.com").
			HasValue("verified", false)
	})
}

func (suite *HandlersTestSuite) TestLogin() {
	const path = "/api/v1/auth/login"

	suite.Run("invalid credentials", func() {
		suite.authMock.
			On("Login", mock.Anything, "user@example.com", "wrong").
			Once().
			Return(nil, service.ErrInvalidCredentials)

		suite.e.POST(path).
			WithJSON(map[string]string{
				"email":    "user@example.com",
				"password": "wrong",
			}).
			Expect().
			Status(http.StatusUnauthorized).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError)
	})

	suite.Run("unverified account", func() {
		suite.authMock.
			On("Login", mock.Anything, "user@example.com", "password123").
			Once().
			Return(nil, service.ErrUserNotVerified)

		suite.e.POST(path).
			WithJSON(map[string]string{
				"email":    "user@example.com",
				"password": "password123",
			}).
			Expect().
			Status(http.StatusForbidden).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError)
	})

	suite.Run("success", func() {
		suite.authMock.
			On("Login", mock.Anything, "user@example.com", "password123").
			Once().
			Return(&service.TokenPair{
				AccessToken:  "access",
				RefreshToken: "refresh",
			}, nil)

		suite.e.POST(path).
			WithJSON(map[string]string{
				"email":    "user@example.com",
				"password": "password123",
			}).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			Value("data").Object().
			HasValue("access", "access").
			HasValue("refresh", "refresh")
	})
}

func (suite *HandlersTestSuite) TestRequireAuth() {
	const path = "/api/v1/organizations"

	suite.Run("missing authorization header", func() {
		suite.e.GET(path).
			Expect().
			Status(http.StatusUnauthorized).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.UnauthorizedResponse.Message)
	})

	suite.Run("invalid access token", func() {
		suite.authMock.
			On("Authenticate", mock.Anything, "garbage").
			Once().
			Return(uuid.Nil, service.ErrInvalidAccessToken)

		suite.e.GET(path).
			WithHeader("Authorization", "Bearer garbage").
			Expect().
			Status(http.StatusUnauthorized).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError)
	})
}

func (suite *HandlersTestSuite) TestGetOrganization() {
	const path = "/api/v1/organizations/%s"

	suite.Run("malformed id", func() {
		suite.expectAuth()

		suite.e.GET(fmt.Sprintf(path, "not-a-uuid")).
			WithHeader("Authorization", suite.authHeader()).
			Expect().
			Status(http.StatusNotFound).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ResourceNotFoundResponse.Message)
	})

	suite.Run("non-member forbidden", func() {
		suite.expectAuth()

		orgID := uuid.New()
		suite.orgMock.
			On("GetOrganization", mock.Anything, suite.callerID, orgID).
			Once().
			Return(nil, service.ErrForbidden)

		suite.e.GET(fmt.Sprintf(path, orgID)).
			WithHeader("Authorization", suite.authHeader()).
			Expect().
			Status(http.StatusForbidden).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ForbiddenResponse.Message)
	})

	suite.Run("success", func() {
		suite.expectAuth()

		orgID := uuid.New()
		suite.orgMock.
			On("GetOrganization", mock.Anything, suite.callerID, orgID).
			Once().
			Return(&models.Organization{
				ID:          orgID,
				Name:        "acme",
				OwnerID:     suite.callerID,
				MemberCount: 3,
			}, nil)

		suite.e.GET(fmt.Sprintf(path, orgID)).
			WithHeader("Authorization", suite.authHeader()).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			Value("data").Object().
			HasValue("name", "acme").
			HasValue("member_count", 3)
	})
}

func (suite *HandlersTestSuite) TestCreateInvite() {
	const path = "/api/v1/organizations/%s/invites"

	suite.Run("invalid role", func() {
		suite.expectAuth()

		suite.e.POST(fmt.Sprintf(path, uuid.New())).
			WithHeader("Authorization", suite.authHeader()).
			WithJSON(map[string]string{
				"email": "new@example.com",
				"role":  "owner",
			}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			ContainsKey("details")
	})

	suite.Run("success", func() {
		suite.expectAuth()

		orgID := uuid.New()
		inviteID := uuid.New()
		suite.inviteMock.
			On("CreateInvite", mock.Anything, suite.callerID, orgID, "new@example.com", models.RoleEditor).
			Once().
			Return(&models.Invite{
				ID:             inviteID,
				OrganizationID: orgID,
				Email:          "new@example.com",
				Role:           models.RoleEditor,
				Token:          "secret-token",
				ExpiresAt:      time.Now().Add(7 * 24 * time.Hour),
			}, true, nil)

		obj := suite.e.POST(fmt.Sprintf(path, orgID)).
			WithHeader("Authorization", suite.authHeader()).
			WithJSON(map[string]string{
				"email": "new@example.com",
				"role":  "editor",
			}).
			Expect().
			Status(http.StatusCreated).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			Value("data").Object().
			HasValue("email_sent", true)

		// The token never leaves the server except in the email.
		obj.Value("invite").Object().
			HasValue("email", "new@example.com").
			HasValue("status", "pending").
			NotContainsKey("token")
	})
}

func (suite *HandlersTestSuite) TestAcceptInvite() {
	const path = "/api/v1/invites/accept"

	suite.Run("already used token", func() {
		suite.expectAuth()

		suite.inviteMock.
			On("AcceptInvite", mock.Anything, suite.callerID, "tok").
			Once().
			Return(nil, service.ErrInviteAlreadyUsed)

		suite.e.POST(path).
			WithHeader("Authorization", suite.authHeader()).
			WithJSON(map[string]string{"token": "tok"}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError)
	})

	suite.Run("expired token", func() {
		suite.expectAuth()

		suite.inviteMock.
			On("AcceptInvite", mock.Anything, suite.callerID, "tok").
			Once().
			Return(nil, service.ErrInviteExpired)

		suite.e.POST(path).
			WithHeader("Authorization", suite.authHeader()).
			WithJSON(map[string]string{"token": "tok"}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError)
	})

	suite.Run("success", func() {
		suite.expectAuth()

		suite.inviteMock.
			On("AcceptInvite", mock.Anything, suite.callerID, "tok").
			Once().
			Return(&models.Invite{
				ID:        uuid.New(),
				Email:     "new@example.com",
				Role:      models.RoleViewer,
				Used:      true,
				Accepted:  true,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil)

		suite.e.POST(path).
			WithHeader("Authorization", suite.authHeader()).
			WithJSON(map[string]string{"token": "tok"}).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			Value("data").Object().
			HasValue("status", "accepted")
	})
}

func (suite *HandlersTestSuite) TestCreateURL() {
	const path = "/api/v1/short-urls"

	suite.Run("requested code conflict", func() {
		suite.expectAuth()

		namespaceID := uuid.New()
		suite.urlMock.
			On("CreateURL", mock.Anything, suite.callerID, service.CreateURLParams{
				NamespaceID: namespaceID,
				OriginalURL: "https://example.com",
				ShortCode:   "launch",
			}).
			Once().
			Return(nil, database.ErrShortCodeExists)

		suite.e.POST(path).
			WithHeader("Authorization", suite.authHeader()).
			WithJSON(map[string]string{
				"namespace_id": namespaceID.String(),
				"original_url": "https://example.com",
				"short_code":   "launch",
			}).
			Expect().
			Status(http.StatusConflict).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ConflictResponse.Message)
	})

	suite.Run("success", func() {
		suite.expectAuth()

		namespaceID := uuid.New()
		urlID := uuid.New()
		suite.urlMock.
			On("CreateURL", mock.Anything, suite.callerID, service.CreateURLParams{
				NamespaceID: namespaceID,
				OriginalURL: "https://example.com",
			}).
			Once().
			Return(&models.ShortURL{
				ID:          urlID,
				NamespaceID: namespaceID,
				ShortCode:   "abc1234",
				OriginalURL: "https://example.com",
				IsActive:    true,
				CreatedBy:   suite.callerID,
			}, nil)

		suite.e.POST(path).
			WithHeader("Authorization", suite.authHeader()).
			WithJSON(map[string]string{
				"namespace_id": namespaceID.String(),
				"original_url": "https://example.com",
			}).
			Expect().
			Status(http.StatusCreated).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			Value("data").Object().
			HasValue("short_code", "abc1234").
			HasValue("original_url", "https://example.com").
			HasValue("is_active", true).
			HasValue("click_count", 0)
	})
}

func (suite *HandlersTestSuite) TestListURLsByNamespace() {
	const path = "/api/v1/short-urls/by_namespace"

	suite.Run("missing namespace_id", func() {
		suite.expectAuth()

		suite.e.GET(path).
			WithHeader("Authorization", suite.authHeader()).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError)
	})

	suite.Run("success", func() {
		suite.expectAuth()

		namespaceID := uuid.New()
		suite.urlMock.
			On("ListURLsByNamespace", mock.Anything, suite.callerID, namespaceID).
			Once().
			Return([]*models.ShortURL{
				{ID: uuid.New(), NamespaceID: namespaceID, ShortCode: "abc1234"},
			}, nil)

		suite.e.GET(path).
			WithHeader("Authorization", suite.authHeader()).
			WithQuery("namespace_id", namespaceID.String()).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			Value("data").Array().
			Length().IsEqual(1)
	})
}

func (suite *HandlersTestSuite) TestRedirect() {
	const path = "/api/v1/short-urls/%s/redirect"

	suite.Run("inactive link", func() {
		suite.expectAuth()

		urlID := uuid.New()
		suite.urlMock.
			On("ResolveURL", mock.Anything, suite.callerID, urlID).
			Once().
			Return(nil, service.ErrURLInactive)

		suite.e.POST(fmt.Sprintf(path, urlID)).
			WithHeader("Authorization", suite.authHeader()).
			Expect().
			Status(http.StatusGone).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError)
	})

	suite.Run("expired link", func() {
		suite.expectAuth()

		urlID := uuid.New()
		suite.urlMock.
			On("ResolveURL", mock.Anything, suite.callerID, urlID).
			Once().
			Return(nil, service.ErrURLExpired)

		suite.e.POST(fmt.Sprintf(path, urlID)).
			WithHeader("Authorization", suite.authHeader()).
			Expect().
			Status(http.StatusGone).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError)
	})

	suite.Run("success", func() {
		suite.expectAuth()

		urlID := uuid.New()
		suite.urlMock.
			On("ResolveURL", mock.Anything, suite.callerID, urlID).
			Once().
			Return(&models.ShortURL{
				ID:          urlID,
				OriginalURL: "https://example.com",
				IsActive:    true,
				ClickCount:  1,
			}, nil)

		suite.e.POST(fmt.Sprintf(path, urlID)).
			WithHeader("Authorization", suite.authHeader()).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess).
			Value("data").Object().
			HasValue("original_url", "https://example.com").
			HasValue("redirect", true)
	})
}

func (suite *HandlersTestSuite) TestDeleteNamespace() {
	const path = "/api/v1/namespaces/%s"

	suite.Run("server error", func() {
		suite.expectAuth()

		namespaceID := uuid.New()
		suite.nsMock.
			On("DeleteNamespace", mock.Anything, suite.callerID, namespaceID).
			Once().
			Return(errors.New("unknown error"))

		suite.e.DELETE(fmt.Sprintf(path, namespaceID)).
			WithHeader("Authorization", suite.authHeader()).
			Expect().
			Status(http.StatusInternalServerError).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.ServerErrorResponse.Message)
	})

	suite.Run("success", func() {
		suite.expectAuth()

		namespaceID := uuid.New()
		suite.nsMock.
			On("DeleteNamespace", mock.Anything, suite.callerID, namespaceID).
			Once().
			Return(nil)

		suite.e.DELETE(fmt.Sprintf(path, namespaceID)).
			WithHeader("Authorization", suite.authHeader()).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusSuccess)
	})
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
