package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		expected string
	}{
		{"plain", "获取登录号信息", "获取登录号信息"},
		{"empty", "", ""},
		{"code span", "`user_id` 为对方 QQ 号", "user_id 为对方 QQ 号"},
		{"emphasis", "**必须**填写", "必须填写"},
		{"link", "见 [CQ 码](../message/string.md)", "见 CQ 码"},
		{"inline html", `<Badge text="发"/> 戳一戳`, "戳一戳"},
		{"soft break", "第一行\n第二行", "第一行 第二行"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, plainText(tt.markdown))
		})
	}
}
