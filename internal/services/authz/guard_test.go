package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"walletcore/internal/models"
)

func TestAuthorize(t *testing.T) {
	admin := Principal{UserID: 1, Role: models.RoleAdministrador}
	standard := Principal{UserID: 2, Role: models.RoleStandard}

	tests := []struct {
		name      string
		principal Principal
		op        Operation
		ownerID   uint
		want      Decision
	}{
		{"admin reads anyone", admin, OpRead, 99, Allow},
		{"admin updates anyone", admin, OpUpdate, 99, Allow},
		{"admin deletes anyone", admin, OpDelete, 99, Allow},
		{"standard reads own", standard, OpRead, 2, Allow},
		{"standard creates own", standard, OpCreate, 2, Allow},
		{"standard reads other", standard, OpRead, 3, Deny},
		{"standard creates for other", standard, OpCreate, 3, Deny},
		{"standard updates own", standard, OpUpdate, 2, Deny},
		{"standard deletes own", standard, OpDelete, 2, Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.principal, tt.op, tt.ownerID))
		})
	}
}
