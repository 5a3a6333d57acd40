package mediasync

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thebluefowl/spacesync/internal/config"
)

func TestValidateSucceeds(t *testing.T) {
	store := newFakeStore()

	res := NewConnectionValidator(store).Validate(context.Background())
	assert.True(t, res.OK)
	assert.Equal(t, "Connection is successfully established. Save the settings.", res.Detail)
	assert.Equal(t, []string{TestObjectKey}, store.deleteCalls)
	assert.Zero(t, store.Len(), "test object is removed again")
}

func TestValidateWriteRejected(t *testing.T) {
	store := newFakeStore()
	store.writeErr = errRejected

	res := NewConnectionValidator(store).Validate(context.Background())
	assert.False(t, res.OK)
	assert.True(t, strings.HasPrefix(res.Detail, "Connection is not established. : "), res.Detail)
	assert.True(t, strings.HasSuffix(res.Detail, " - AccessDenied"), res.Detail)
	assert.Contains(t, res.Detail, "access denied")
	assert.Empty(t, store.deleteCalls)
}

func TestValidateDeleteRejected(t *testing.T) {
	store := newFakeStore()
	store.deleteErrs[TestObjectKey] = errRejected

	res := NewConnectionValidator(store).Validate(context.Background())
	assert.False(t, res.OK)
	assert.Contains(t, res.Detail, "AccessDenied")
}

func TestValidateErrorWithoutCode(t *testing.T) {
	store := newFakeStore()
	store.writeErr = context.DeadlineExceeded

	res := NewConnectionValidator(store).Validate(context.Background())
	assert.False(t, res.OK)
	assert.Equal(t, "Connection is not established. : context deadline exceeded", res.Detail)
}

func TestEngineTestConnection(t *testing.T) {
	f := newFixture(t)
	res := f.engine(config.Config{}).TestConnection(context.Background())
	assert.True(t, res.OK)
}
