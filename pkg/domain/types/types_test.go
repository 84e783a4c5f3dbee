package types_test

import (
	"testing"

	"github.com/keepsake-app/keepsake/pkg/domain/types"
)

func TestMemoryID(t *testing.T) {
	t.Run("generated ID is valid", func(t *testing.T) {
		id := types.NewMemoryID()
		if err := id.Validate(); err != nil {
			t.Errorf("expected valid ID, got error: %v", err)
		}
	})

	t.Run("empty ID is invalid", func(t *testing.T) {
		if err := types.MemoryID("").Validate(); err == nil {
			t.Error("expected error for empty ID")
		}
	})

	t.Run("non-UUID ID is invalid", func(t *testing.T) {
		if err := types.MemoryID("not-a-uuid").Validate(); err == nil {
			t.Error("expected error for non-UUID ID")
		}
	})

	t.Run("generated IDs are unique", func(t *testing.T) {
		a := types.NewMemoryID()
		b := types.NewMemoryID()
		if a == b {
			t.Errorf("expected distinct IDs, got %s twice", a)
		}
	})
}

func TestGroupID(t *testing.T) {
	t.Run("generated ID is valid", func(t *testing.T) {
		id := types.NewGroupID()
		if err := id.Validate(); err != nil {
			t.Errorf("expected valid ID, got error: %v", err)
		}
	})

	t.Run("empty ID is invalid", func(t *testing.T) {
		if err := types.GroupID("").Validate(); err == nil {
			t.Error("expected error for empty ID")
		}
	})
}
