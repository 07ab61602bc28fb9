package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordText(t *testing.T) {
	r := Record{"sku": "A-1", "quantity": 12.5, "status": nil}

	assert.Equal(t, "A-1", r.Text("sku"))
	assert.Equal(t, "12.5", r.Text("quantity"))
	assert.Equal(t, "", r.Text("status"))
	assert.Equal(t, "", r.Text("missing"))
}

func TestRecordFloat(t *testing.T) {
	r := Record{"a": 3.0, "b": " 4.5 ", "c": "n/a", "d": 7}

	v, err := r.Float("a")
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	v, err = r.Float("b")
	require.NoError(t, err)
	assert.Equal(t, 4.5, v)

	v, err = r.Float("d")
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	_, err = r.Float("c")
	assert.Error(t, err)
	_, err = r.Float("missing")
	assert.Error(t, err)
}
