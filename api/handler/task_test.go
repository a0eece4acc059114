package handler

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/internal/auth"
	"github.com/taskhive/backend/internal/middleware"
	"github.com/taskhive/backend/repository/memory"
	taskUC "github.com/taskhive/backend/usecase/task"
)

const testSecret = "handler-test-secret"

type taskEnvelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code"`
	Data   domain.Task `json:"data"`
	Error  string      `json:"error"`
	Meta   interface{} `json:"meta"`
}

type fixture struct {
	handler *TaskHandler
	wrap    func(fasthttp.RequestHandler) fasthttp.RequestHandler
	repo    *memory.TaskRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.NewTaskRepository()
	uc := taskUC.New(repo, nil, nil)
	return &fixture{
		handler: NewTaskHandler(uc, nil, nil),
		wrap:    middleware.BearerAuth(auth.NewVerifier(testSecret), nil),
		repo:    repo,
	}
}

func tokenFor(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// call drives a handler through the auth middleware the way the router
// would, with an optional path id.
func (f *fixture) call(t *testing.T, h fasthttp.RequestHandler, token, body string, id int64) *fasthttp.RequestCtx {
	t.Helper()
	var ctx fasthttp.RequestCtx
	if token != "" {
		ctx.Request.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	if id != 0 {
		ctx.SetUserValue("id", strconv.FormatInt(id, 10))
	}
	f.wrap(h)(&ctx)
	return &ctx
}

func decode(t *testing.T, ctx *fasthttp.RequestCtx) taskEnvelope {
	t.Helper()
	var envelope taskEnvelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &envelope))
	return envelope
}

func TestCreateRequiresAuth(t *testing.T) {
	f := newFixture(t)

	ctx := f.call(t, f.handler.CreateTask, "", `{"title":"nope"}`, 0)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestCreateReturnsTaskWithoutOwner(t *testing.T) {
	f := newFixture(t)

	ctx := f.call(t, f.handler.CreateTask, tokenFor(t, "u1"), `{"title":"Buy milk"}`, 0)
	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())

	envelope := decode(t, ctx)
	assert.Equal(t, "success", envelope.Status)
	assert.Equal(t, int64(1), envelope.Data.ID)
	assert.False(t, envelope.Data.Completed)

	// The owner identity never appears in the outward representation.
	assert.NotContains(t, string(ctx.Response.Body()), "owner")
	assert.NotContains(t, string(ctx.Response.Body()), "u1")
}

func TestCreateInvalidJSON(t *testing.T) {
	f := newFixture(t)

	ctx := f.call(t, f.handler.CreateTask, tokenFor(t, "u1"), `{"title":`, 0)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
}

func TestCreateValidationDetails(t *testing.T) {
	f := newFixture(t)

	long := strings.Repeat("x", 201)
	ctx := f.call(t, f.handler.CreateTask, tokenFor(t, "u1"), `{"title":"`+long+`"}`, 0)
	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	envelope := decode(t, ctx)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
	meta, ok := envelope.Meta.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "title", meta["field"])
	assert.Equal(t, "length", meta["constraint"])
}

func TestDeleteReturnsNoContent(t *testing.T) {
	f := newFixture(t)
	u1 := tokenFor(t, "u1")

	f.call(t, f.handler.CreateTask, u1, `{"title":"gone soon"}`, 0)

	ctx := f.call(t, f.handler.DeleteTask, u1, "", 1)
	assert.Equal(t, fasthttp.StatusNoContent, ctx.Response.StatusCode())
	assert.Empty(t, ctx.Response.Body())
}

func TestNonNumericIDMapsToNotFound(t *testing.T) {
	f := newFixture(t)

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer "+tokenFor(t, "u1"))
	ctx.SetUserValue("id", "abc")
	f.wrap(f.handler.DeleteTask)(&ctx)

	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestListReturnsOwnTasksNewestFirst(t *testing.T) {
	f := newFixture(t)
	u1 := tokenFor(t, "u1")

	clock := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	f.repo.Now = func() time.Time { return clock }

	f.call(t, f.handler.CreateTask, u1, `{"title":"first"}`, 0)
	clock = clock.Add(time.Minute)
	f.call(t, f.handler.CreateTask, u1, `{"title":"second"}`, 0)

	ctx := f.call(t, f.handler.GetTasks, u1, "", 0)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var envelope struct {
		Data []domain.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "second", envelope.Data[0].Title)
	assert.Equal(t, "first", envelope.Data[1].Title)
}

// End-to-end walk: create as one user, probe as another, complete,
// empty patch, invalid patch.
func TestLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	u1 := tokenFor(t, "u1")
	u2 := tokenFor(t, "u2")

	// u1 creates a task.
	ctx := f.call(t, f.handler.CreateTask, u1, `{"title":"Buy milk"}`, 0)
	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())
	created := decode(t, ctx).Data
	require.Equal(t, int64(1), created.ID)
	require.False(t, created.Completed)

	// u2 cannot delete it; the response is indistinguishable from a
	// missing task.
	ctx = f.call(t, f.handler.DeleteTask, u2, "", created.ID)
	require.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	assert.Equal(t, "NOT_FOUND", decode(t, ctx).Code)

	// u1 completes it.
	ctx = f.call(t, f.handler.CompleteTask, u1, "", created.ID)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	completed := decode(t, ctx).Data
	assert.True(t, completed.Completed)

	// An empty patch changes nothing, including updated_at.
	ctx = f.call(t, f.handler.UpdateTask, u1, `{}`, created.ID)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	unchanged := decode(t, ctx).Data
	assert.Equal(t, completed.UpdatedAt, unchanged.UpdatedAt)
	assert.True(t, unchanged.Completed)

	// An empty title is rejected and the task stays intact.
	ctx = f.call(t, f.handler.UpdateTask, u1, `{"title":""}`, created.ID)
	require.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "VALIDATION_ERROR", decode(t, ctx).Code)

	ctx = f.call(t, f.handler.GetTasks, u1, "", 0)
	var envelope struct {
		Data []domain.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Buy milk", envelope.Data[0].Title)

	// Uncomplete brings it back to active.
	ctx = f.call(t, f.handler.UncompleteTask, u1, "", created.ID)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.False(t, decode(t, ctx).Data.Completed)
}
