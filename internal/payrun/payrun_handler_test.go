package payrun_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mini-payrun/internal/payrun"
	payrunerrors "mini-payrun/internal/payrun/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrunService struct {
	runFn        func(ctx context.Context, req payrun.RunPayrunRequest) (payrun.RunPayrunResponse, error)
	getAllFn     func(ctx context.Context) ([]payrun.PayrunResponse, error)
	getByIDFn    func(ctx context.Context, id string) (payrun.PayrunDetailResponse, error)
	getPayslipFn func(ctx context.Context, employeeID, payrunID string) (*payrun.PayslipResponse, error)
}

func (f *fakePayrunService) Run(ctx context.Context, req payrun.RunPayrunRequest) (payrun.RunPayrunResponse, error) {
	return f.runFn(ctx, req)
}

func (f *fakePayrunService) GetAll(ctx context.Context) ([]payrun.PayrunResponse, error) {
	return f.getAllFn(ctx)
}

func (f *fakePayrunService) GetByID(ctx context.Context, id string) (payrun.PayrunDetailResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakePayrunService) GetPayslip(ctx context.Context, employeeID, payrunID string) (*payrun.PayslipResponse, error) {
	return f.getPayslipFn(ctx, employeeID, payrunID)
}

func TestPayrunHandler_Run(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakePayrunService{
			runFn: func(ctx context.Context, req payrun.RunPayrunRequest) (payrun.RunPayrunResponse, error) {
				assert.Equal(t, "2026-02-02", req.PeriodStart)
				assert.Equal(t, payrun.SubsetAll, req.EmployeeSubset)
				return payrun.RunPayrunResponse{
					ID:            uuid.New().String(),
					PeriodStart:   req.PeriodStart,
					PeriodEnd:     req.PeriodEnd,
					Totals:        payrun.Totals{Gross: 1262.5, Tax: 121.88, Super: 145.19, Net: 1140.62},
					PayslipsCount: 1,
				}, nil
			},
		}

		h := payrun.NewHandler(svc, nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"periodStart":"2026-02-02","periodEnd":"2026-02-08","employeeSubset":"all"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payruns", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Run(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("binding failure is a 400", func(t *testing.T) {
		h := payrun.NewHandler(&fakePayrunService{}, nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"periodStart":"2026-02-02","periodEnd":"2026-02-08","employeeSubset":"salaried"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payruns", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Run(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})

	t.Run("no payable entries is a 404", func(t *testing.T) {
		svc := &fakePayrunService{
			runFn: func(ctx context.Context, req payrun.RunPayrunRequest) (payrun.RunPayrunResponse, error) {
				return payrun.RunPayrunResponse{}, payrunerrors.ErrNoPayableEntries
			},
		}

		h := payrun.NewHandler(svc, nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"periodStart":"2026-02-02","periodEnd":"2026-02-08","employeeSubset":"all"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payruns", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Run(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
		assert.Equal(t, "payrun ran but no payable entries", env.Error.Message)
	})
}

func TestPayrunHandler_GetByID(t *testing.T) {
	payrunID := uuid.New().String()

	svc := &fakePayrunService{
		getByIDFn: func(ctx context.Context, id string) (payrun.PayrunDetailResponse, error) {
			assert.Equal(t, payrunID, id)
			return payrun.PayrunDetailResponse{
				PeriodStart: "2026-02-02",
				PeriodEnd:   "2026-02-08",
				Employees: []payrun.PayrunEmployee{
					{ID: uuid.New().String(), FirstName: "Dana", LastName: "Lee"},
				},
			}, nil
		},
	}

	h := payrun.NewHandler(svc, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payruns/"+payrunID, nil)
	c.Params = []gin.Param{{Key: "id", Value: payrunID}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestPayrunHandler_GetPayslip_NullBody(t *testing.T) {
	svc := &fakePayrunService{
		getPayslipFn: func(ctx context.Context, employeeID, payrunID string) (*payrun.PayslipResponse, error) {
			return nil, nil
		},
	}

	h := payrun.NewHandler(svc, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payslips/a/b", nil)
	c.Params = []gin.Param{
		{Key: "employeeId", Value: uuid.New().String()},
		{Key: "payrunId", Value: uuid.New().String()},
	}

	h.GetPayslip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	assert.Equal(t, "null", string(env.Data))
}
