package wpschema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpperCamelize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"post", "Post"},
		{"page", "Page"},
		{"custom_widget", "CustomWidget"},
		{"nav_menu_item", "NavMenuItem"},
		{"hello-world", "HelloWorld"},
		{"my cpt", "MyCpt"},
		{"v2_item", "V2Item"},
		{"item2go", "Item2Go"},
		{"  _leading__and--trailing_ ", "LeadingAndTrailing"},
		{"alreadyCamel", "AlreadyCamel"},
		{"", ""},
		{"___", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, UpperCamelize(tt.in))
		})
	}
}

func TestValidTypeName(t *testing.T) {
	for _, name := range []string{"Post", "CustomWidget", "V2Item", "_Hidden"} {
		require.True(t, validTypeName(name), name)
	}
	for _, name := range []string{"", "2Fa", "__Type", "Café", "A.B"} {
		require.False(t, validTypeName(name), name)
	}
}
