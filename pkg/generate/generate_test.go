package generate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leizor/go-onebot-model-generator/pkg/config"
	"github.com/leizor/go-onebot-model-generator/pkg/model"
)

const eventDocument = "# 消息事件\n" +
	"\n" +
	"## 私聊消息\n" +
	"\n" +
	"### 事件数据\n" +
	"\n" +
	"| 字段名 | 数据类型 | 可能的值 | 说明 |\n" +
	"| --- | --- | --- | --- |\n" +
	"| `post_type` | string | `message` | 上报类型 |\n" +
	"| `message_type` | string | `private` | 消息类型 |\n" +
	"| `sub_type` | string | `friend`、`group`、`other` | 消息子类型 |\n" +
	"| `message` | message | - | 消息内容 |\n"

const noticeDocument = "# 通知事件\n" +
	"\n" +
	"## 群文件上传\n" +
	"\n" +
	"### 事件数据\n" +
	"\n" +
	"| 字段名 | 数据类型 | 可能的值 | 说明 |\n" +
	"| --- | --- | --- | --- |\n" +
	"| `post_type` | string | `notice` | 上报类型 |\n" +
	"| `notice_type` | string | `group_upload` | 通知类型 |\n" +
	"| `group_id` | number (int64) | - | 群号 |\n"

func writeDocument(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.InputDir = dir
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.Package = "onebot"
	return cfg
}

func TestRun(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeDocument(t, cfg.InputDir, cfg.APIFile, apiDocument)
	writeDocument(t, cfg.InputDir, cfg.EventFiles[0], eventDocument)

	require.NoError(t, Run(context.Background(), cfg, zerolog.Nop()))

	for _, name := range []string{APIFileName, EventFileName, MessageFileName} {
		src, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err)
		requireValidGo(t, src)
		assert.Contains(t, string(src), "package onebot\n")
	}

	src, err := os.ReadFile(filepath.Join(cfg.OutputDir, EventFileName))
	require.NoError(t, err)
	assert.Contains(t, squash(src), "type PrivateMessageEvent struct {")
}

func TestRun_OnlySegmentsOutput(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)

	require.NoError(t, Run(context.Background(), cfg, zerolog.Nop()))

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, MessageFileName, entries[0].Name())
}

func TestRun_ConfiguredEventNames(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.EventNames = map[string]string{"私聊消息": "PrivateMessage"}
	writeDocument(t, cfg.InputDir, cfg.EventFiles[0], eventDocument)

	require.NoError(t, Run(context.Background(), cfg, zerolog.Nop()))

	src, err := os.ReadFile(filepath.Join(cfg.OutputDir, EventFileName))
	require.NoError(t, err)
	assert.Contains(t, squash(src), "type PrivateMessage struct {")
}

func TestLoadSchema_KeepsEventFileOrder(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.MaxWorkers = 1
	cfg.EventFiles = []string{"notice.md", "message.md"}
	writeDocument(t, cfg.InputDir, "notice.md", noticeDocument)
	writeDocument(t, cfg.InputDir, "message.md", eventDocument)

	schema, err := LoadSchema(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, schema.Events, 2)
	assert.Equal(t, "群文件上传", schema.Events[0].Name)
	assert.Equal(t, "group_upload", schema.Events[0].EventType)
	assert.Equal(t, "私聊消息", schema.Events[1].Name)
	assert.Empty(t, schema.APIs)
	assert.Empty(t, schema.Segments)
}

func TestLoadSchema_ReadError(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.APIFile = "api"
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.InputDir, "api"), 0o755))

	_, err := LoadSchema(context.Background(), cfg, zerolog.Nop())
	assert.ErrorContains(t, err, "problem reading document")
}

func TestLoadSchema_Cancelled(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadSchema(ctx, cfg, zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadSchema_MissingInputDir(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.InputDir = filepath.Join(cfg.InputDir, "missing")

	_, err := LoadSchema(context.Background(), cfg, zerolog.Nop())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPackage_NamesAreDistinctAcrossFiles(t *testing.T) {
	t.Parallel()

	p := NewPackage("onebot")

	apis := []model.APIDefinition{{
		Name:     "get_x",
		Request:  model.Model{Name: "get_x_req", Fields: []model.Field{newField("message", "message")}},
		Response: model.Model{Name: "get_x_resp", Fields: []model.Field{}},
	}}
	apiSrc, err := p.RenderAPIs(apis)
	require.NoError(t, err)

	events := []model.EventModel{
		{Name: "撞名一", Description: "撞名一", Fields: []model.Field{newField("kind", "string", "a")}},
		{Name: "撞名二", Description: "撞名二"},
		{Name: "撞名三", Description: "撞名三"},
	}
	names := func(heading string) (string, bool) {
		switch heading {
		case "撞名一":
			return "GetXRequest", true
		case "撞名二":
			return "MessageValue", true
		case "撞名三":
			return "TextSegmentData", true
		}
		return "", false
	}
	eventSrc, err := p.RenderEvents(events, names)
	require.NoError(t, err)

	segments := []model.MessageSegment{{
		SegmentType: "text",
		Fields:      []model.Field{optional(newField("text", "string"))},
		CanSend:     true,
		CanReceive:  true,
	}}
	messageSrc, err := p.RenderMessageSegments(segments)
	require.NoError(t, err)

	requireCompiles(t, apiSrc, eventSrc, messageSrc)

	eventOut := squash(eventSrc)
	assert.Contains(t, eventOut, "type GetXRequest2 struct {")
	assert.Contains(t, eventOut, "type GetXRequest2Kind string")
	assert.Contains(t, eventOut, "type MessageValue2 struct {")
	assert.Contains(t, eventOut, "type TextSegmentData struct {")
	assert.Contains(t, squash(messageSrc), "type TextSegmentData2 struct {")
}

func TestRun_OutputCompiles(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeDocument(t, cfg.InputDir, cfg.APIFile, apiDocument)
	writeDocument(t, cfg.InputDir, cfg.EventFiles[0], eventDocument)

	require.NoError(t, Run(context.Background(), cfg, zerolog.Nop()))

	var srcs [][]byte
	for _, name := range []string{APIFileName, EventFileName, MessageFileName} {
		src, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err)
		srcs = append(srcs, src)
	}
	requireCompiles(t, srcs...)
}
