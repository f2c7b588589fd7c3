package gemini_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/gmi/gemini"
)

func TestStatusCode_Category(t *testing.T) {
	for _, tc := range []struct {
		code gemini.StatusCode
		cat  gemini.Category
	}{
		{gemini.StatusInput, gemini.CategoryInput},
		{gemini.StatusSensitiveInput, gemini.CategoryInput},
		{gemini.StatusSuccess, gemini.CategorySuccess},
		{gemini.StatusRedirectPermanent, gemini.CategoryRedirect},
		{gemini.StatusSlowDown, gemini.CategoryTemporaryFailure},
		{gemini.StatusBadRequest, gemini.CategoryPermanentFailure},
		{gemini.StatusCertificateNotValid, gemini.CategoryClientCertificateRequired},
		{21, gemini.CategoryNone},
		{99, gemini.CategoryNone},
	} {
		assert.Equal(t, tc.cat, tc.code.Category(), "%v category", tc.code)
	}
}

func TestStatusCode_Valid(t *testing.T) {
	valid := make(map[gemini.StatusCode]bool)
	for _, code := range allStatusCodes {
		valid[code] = true
	}
	for code := gemini.StatusCode(0); code < 100; code++ {
		assert.Equal(t, valid[code], code.Valid(), "%d validity", int(code))
	}
	assert.Equal(t, "NotFound", gemini.StatusNotFound.String())
	assert.Equal(t, "InvalidStatus25", gemini.StatusCode(25).String())
}
