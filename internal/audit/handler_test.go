package audit_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymcore-backend/internal/audit"
	"gymcore-backend/internal/models"
	"gymcore-backend/internal/testutil"
)

func TestWriteLogSnapshots(t *testing.T) {
	env := testutil.Setup(t)

	entityID := uuid.New()
	err := audit.WriteLog(audit.LogOptions{
		UserID:      uuid.New(),
		UserName:    "boss",
		EntityType:  "expense",
		EntityID:    entityID,
		Action:      models.AuditActionUpdate,
		Description: "Expense updated: Water refill",
		Before:      map[string]any{"amount": 500},
		After:       map[string]any{"amount": 650},
	})
	require.NoError(t, err)

	var entry models.AuditLog
	require.NoError(t, env.DB.First(&entry, "entity_id = ?", entityID).Error)

	assert.JSONEq(t, `{"amount":500}`, entry.BeforeData)
	assert.JSONEq(t, `{"amount":650}`, entry.AfterData)
}

func TestWriteLogNilSnapshotsAreJSONNull(t *testing.T) {
	env := testutil.Setup(t)

	entityID := uuid.New()
	require.NoError(t, audit.WriteLog(audit.LogOptions{
		EntityType: "product",
		EntityID:   entityID,
		Action:     models.AuditActionCreate,
	}))

	var entry models.AuditLog
	require.NoError(t, env.DB.First(&entry, "entity_id = ?", entityID).Error)

	assert.Equal(t, "null", entry.BeforeData)
	assert.Equal(t, "null", entry.AfterData)
}

func TestListAuditLogs(t *testing.T) {
	env := testutil.Setup(t)
	adminToken := env.Token(t, env.CreateUser(t, "boss", models.RoleAdmin))
	staffToken := env.Token(t, env.CreateUser(t, "desk", models.RoleStaff))

	for i := 0; i < 3; i++ {
		require.NoError(t, audit.WriteLog(audit.LogOptions{
			EntityType: "sale",
			EntityID:   uuid.New(),
			Action:     models.AuditActionCreate,
		}))
	}
	require.NoError(t, audit.WriteLog(audit.LogOptions{
		EntityType: "expense",
		EntityID:   uuid.New(),
		Action:     models.AuditActionDelete,
	}))

	// The trail is admin-only.
	resp := env.Request(t, http.MethodGet, "/api/audit-logs", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.Request(t, http.MethodGet, "/api/audit-logs", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, testutil.DecodeList(t, resp), 4)

	resp = env.Request(t, http.MethodGet, "/api/audit-logs?entity_type=sale", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, testutil.DecodeList(t, resp), 3)

	resp = env.Request(t, http.MethodGet, "/api/audit-logs?entity_type=sale&limit=2", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, testutil.DecodeList(t, resp), 2)
}
