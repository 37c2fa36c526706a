package models

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Identity(t *testing.T) {
	now := time.Now()
	u := &User{
		ID:           "1",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$abc",
		BiometricKey: "bio",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id := u.Identity()
	require.NotNil(t, id)
	assert.Equal(t, &Identity{ID: "1", Email: "a@x.com", BiometricKey: "bio", CreatedAt: now, UpdatedAt: now}, id)
}

func TestUser_Identity_Nil(t *testing.T) {
	var u *User
	assert.Nil(t, u.Identity())
}

func TestIdentity_HasNoPasswordField(t *testing.T) {
	typ := reflect.TypeOf(Identity{})
	for i := 0; i < typ.NumField(); i++ {
		assert.NotContains(t, typ.Field(i).Name, "Password")
	}
}
