package bootstrap_test

import (
	"testing"

	"anoa.com/swetter/internal/bootstrap"
	"anoa.com/swetter/internal/entity"
	"anoa.com/swetter/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedAdminIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, bootstrap.SeedAdmin(db, "s3cret"))
	require.NoError(t, bootstrap.SeedAdmin(db, "other"))

	var admin entity.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret")))

	var posts []entity.Post
	require.NoError(t, db.Find(&posts).Error)
	require.Len(t, posts, 1)
	assert.True(t, posts[0].AutoAnswer)
	assert.Equal(t, entity.DefaultPostDelay, posts[0].Delay)

	var comments, replies int64
	db.Model(&entity.Comment{}).Count(&comments)
	db.Model(&entity.Reply{}).Count(&replies)
	assert.Equal(t, int64(1), comments)
	assert.Equal(t, int64(1), replies)
}

func TestPostDeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, bootstrap.SeedAdmin(db, "admin"))

	var post entity.Post
	require.NoError(t, db.First(&post).Error)
	require.NoError(t, db.Delete(&entity.Post{}, post.ID).Error)

	var comments, replies int64
	db.Model(&entity.Comment{}).Count(&comments)
	db.Model(&entity.Reply{}).Count(&replies)
	assert.Zero(t, comments)
	assert.Zero(t, replies)
}
