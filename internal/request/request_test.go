package request

//go:generate mockgen -source=department.go -destination=mocks/mocks.go -package=mocks DepartmentLookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"docflow/internal/platform/metrics"
	"docflow/internal/request/mocks"
	"docflow/internal/store"
	"docflow/pkg/platform/sentinel"
	"docflow/pkg/validation"
)

type RequestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	lookup  *mocks.MockDepartmentLookup
	metrics *metrics.Metrics
	router  *Router
	ctx     context.Context
}

func TestRequestSuite(t *testing.T) {
	suite.Run(t, new(RequestSuite))
}

func (s *RequestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.lookup = mocks.NewMockDepartmentLookup(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.router = NewRouter(WithMetrics(s.metrics))
	s.router.Handle(GetUserDepartmentInfoRequestTypeID, "get_user_department_info",
		GetUserDepartmentInfo(s.lookup, nil, nil))
	s.ctx = context.Background()
}

func (s *RequestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// =============================================================================
// Info
// =============================================================================

func (s *RequestSuite) TestInfoGetters() {
	id := uuid.New()
	info := Info{"a": id, "b": id.String(), "c": "not-a-uuid", "d": 42, "e": (*uuid.UUID)(nil), "f": &id}

	got, ok := info.UUID("a")
	s.True(ok)
	s.Equal(id, got)
	got, ok = info.UUID("b")
	s.True(ok)
	s.Equal(id, got)
	_, ok = info.UUID("c")
	s.False(ok)
	_, ok = info.UUID("d")
	s.False(ok)
	_, ok = info.UUID("e")
	s.False(ok)
	got, ok = info.UUID("f")
	s.True(ok)
	s.Equal(id, got)
	_, ok = info.UUID("missing")
	s.False(ok)

	str, ok := info.String("c")
	s.True(ok)
	s.Equal("not-a-uuid", str)
	_, ok = info.String("d")
	s.False(ok)
}

func (s *RequestSuite) TestResponseJSON() {
	resp := &Response{
		Validation: validation.Failure(CodeDepartmentNotFound, "нет"),
		Info:       Info{"Name": "Бухгалтерия"},
	}
	data, err := json.Marshal(resp)
	s.Require().NoError(err)

	var decoded Response
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.False(decoded.Successful())
	s.True(decoded.Validation.HasCode(CodeDepartmentNotFound))
	s.Equal("Бухгалтерия", decoded.Info["Name"])

	data, err = json.Marshal(&Response{})
	s.Require().NoError(err)
	s.JSONEq(`{"validation":[]}`, string(data))
}

// =============================================================================
// Router
// =============================================================================

func (s *RequestSuite) TestUnknownRequestType() {
	resp, err := s.router.Request(s.ctx, Request{Type: uuid.New()})
	s.Require().NoError(err)
	s.False(resp.Successful())
	s.True(resp.Validation.HasCode(CodeUnknownRequestType))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CrossTierRequests.WithLabelValues("unknown", "failure")))
}

func (s *RequestSuite) TestHandlerPanicBecomesFailure() {
	typeID := uuid.New()
	s.router.Handle(typeID, "explode", func(context.Context, Info) *Response { panic("boom") })

	resp, err := s.router.Request(s.ctx, Request{Type: typeID})
	s.Require().NoError(err)
	s.True(resp.Validation.HasCode(CodeLookupFailed))
}

func (s *RequestSuite) TestNilHandlerResponseIsSuccess() {
	typeID := uuid.New()
	s.router.Handle(typeID, "noop", func(context.Context, Info) *Response { return nil })

	resp, err := s.router.Request(s.ctx, Request{Type: typeID})
	s.Require().NoError(err)
	s.True(resp.Successful())
	s.NotNil(resp.Info)
}

func (s *RequestSuite) TestDuplicateRegistrationPanics() {
	s.Panics(func() {
		s.router.Handle(GetUserDepartmentInfoRequestTypeID, "again", nil)
	})
}

// =============================================================================
// GetUserDepartmentInfo
// =============================================================================

func (s *RequestSuite) TestDepartmentFound() {
	authorID, deptID := uuid.New(), uuid.New()
	s.lookup.EXPECT().DepartmentByUser(gomock.Any(), gomock.Any(), authorID).
		Return(&store.Department{ID: deptID, Name: "Архив", Index: "01-07"}, nil)

	info, result, err := RequestUserDepartmentInfo(s.ctx, s.router, &authorID)
	s.Require().NoError(err)
	s.True(result.IsSuccessful())
	s.Require().NotNil(info)
	s.Equal(deptID, info.ID)
	s.Equal("Архив", info.Name)
	s.Equal("01-07", info.Index)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CrossTierRequests.WithLabelValues("get_user_department_info", "success")))
}

func (s *RequestSuite) TestDepartmentNotFound() {
	authorID := uuid.New()
	s.lookup.EXPECT().DepartmentByUser(gomock.Any(), gomock.Any(), authorID).
		Return(nil, fmt.Errorf("department of %s: %w", authorID, sentinel.ErrNotFound))

	info, result, err := RequestUserDepartmentInfo(s.ctx, s.router, &authorID)
	s.Require().NoError(err)
	s.Nil(info)
	s.True(result.HasCode(CodeDepartmentNotFound))
}

func (s *RequestSuite) TestDepartmentLookupError() {
	authorID := uuid.New()
	s.lookup.EXPECT().DepartmentByUser(gomock.Any(), gomock.Any(), authorID).
		Return(nil, errors.New("connection reset"))

	info, result, err := RequestUserDepartmentInfo(s.ctx, s.router, &authorID)
	s.Require().NoError(err)
	s.Nil(info)
	s.True(result.HasCode(CodeLookupFailed))
}

func (s *RequestSuite) TestDepartmentMissingAuthor() {
	info, result, err := RequestUserDepartmentInfo(s.ctx, s.router, nil)
	s.Require().NoError(err)
	s.Nil(info)
	s.True(result.HasCode(CodeInvalidRequest))
}

// =============================================================================
// HTTP transport
// =============================================================================

func (s *RequestSuite) newServer() *httptest.Server {
	r := chi.NewRouter()
	NewHandler(s.router, nil).Register(r)
	srv := httptest.NewServer(r)
	s.T().Cleanup(srv.Close)
	return srv
}

func (s *RequestSuite) TestHTTPRoundTrip() {
	srv := s.newServer()
	authorID, deptID := uuid.New(), uuid.New()
	s.lookup.EXPECT().DepartmentByUser(gomock.Any(), gomock.Any(), authorID).
		Return(&store.Department{ID: deptID, Name: "Архив", Index: "01-07"}, nil)

	client := NewHTTPClient(srv.URL+"/", srv.Client())
	info, result, err := RequestUserDepartmentInfo(s.ctx, client, &authorID)
	s.Require().NoError(err)
	s.True(result.IsSuccessful())
	s.Require().NotNil(info)
	s.Equal(deptID, info.ID)
	s.Equal("01-07", info.Index)
}

func (s *RequestSuite) TestHTTPUnknownTypeStillOK() {
	srv := s.newServer()
	resp, err := NewHTTPClient(srv.URL, srv.Client()).Request(s.ctx, Request{Type: uuid.New()})
	s.Require().NoError(err)
	s.True(resp.Validation.HasCode(CodeUnknownRequestType))
}

func (s *RequestSuite) TestHTTPBadBody() {
	srv := s.newServer()
	httpResp, err := srv.Client().Post(srv.URL+Path, "application/json", strings.NewReader(`{"type":`))
	s.Require().NoError(err)
	defer httpResp.Body.Close()
	s.Equal(http.StatusBadRequest, httpResp.StatusCode)
}

func (s *RequestSuite) TestHTTPTransportError() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, srv.Client()).Request(s.ctx, Request{Type: uuid.New()})
	s.Require().ErrorIs(err, ErrTransport)
}
