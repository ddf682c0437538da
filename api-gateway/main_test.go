package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCareRoute(t *testing.T) {
	orgID := "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"

	assert.True(t, isCareRoute("/"+orgID+"/enclosures"))
	assert.True(t, isCareRoute("/"+orgID+"/species/123/image"))
	assert.True(t, isCareRoute("/"+orgID+"/tasks/overview"))

	assert.False(t, isCareRoute("/"+orgID+"/members"))
	assert.False(t, isCareRoute("/"+orgID+"/invites"))
	assert.False(t, isCareRoute("/"+orgID))
	assert.False(t, isCareRoute(""))
}
