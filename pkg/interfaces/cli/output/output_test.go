package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/polebom/pkg/application/dto"
	"github.com/vsinha/polebom/pkg/domain/entities"
)

func sampleResult(t *testing.T) *dto.BOMResult {
	t.Helper()

	pole, err := entities.NewLineItem("POLE-C-125-BUSCK", "Busck Concrete Pole - 12.5m", 1, entities.CategoryPoles)
	require.NoError(t, err)
	bolt, err := entities.NewLineItem("BOLT-M16-325", "M16x325mm Bolt", 2, entities.CategoryM16Bolts)
	require.NoError(t, err)

	return &dto.BOMResult{
		SessionID: "session-1",
		Components: []entities.ConfiguredComponent{
			entities.NewConfiguredComponent(1, entities.KindPole, nil, 0, "POLE-125-Single-BUSCK-C", nil, []entities.LineItem{*pole}),
			entities.NewConfiguredComponent(2, entities.KindCrossarm, nil, 150, "XARM-11-A-30-1-TPS3T-T-3", nil, []entities.LineItem{*bolt}),
		},
		PickList: &entities.PickList{
			Groups: []entities.CategoryGroup{
				{Category: entities.CategoryPoles, Items: []entities.LineItem{*pole}},
				{Category: entities.CategoryM16Bolts, Items: []entities.LineItem{*bolt}},
			},
			ComponentCount: 2,
		},
	}
}

func TestGenerate_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleResult(t), Config{Format: "text", Out: &buf}))

	out := buf.String()
	assert.Contains(t, out, "Components: 2")
	assert.Contains(t, out, "XARM-11-A-30-1-TPS3T-T-3")
	assert.Contains(t, out, "M16 Bolts")
	assert.Less(t, strings.Index(out, "POLE-C-125-BUSCK"), strings.Index(out, "BOLT-M16-325"))
}

func TestGenerate_TextWritesFile(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleResult(t), Config{Format: "text", OutputDir: dir, Out: &buf}))

	data, err := os.ReadFile(filepath.Join(dir, "pick_list.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "BOLT-M16-325")
}

func TestGenerate_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(sampleResult(t), Config{Format: "json", Out: &buf}))

	var decoded struct {
		SessionID  string `json:"session_id"`
		Components []struct {
			Kind            string `json:"kind"`
			BuildIdentifier string `json:"build_identifier"`
		} `json:"components"`
		PickList struct {
			Groups []struct {
				Category string `json:"category"`
			} `json:"groups"`
		} `json:"pick_list"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "session-1", decoded.SessionID)
	require.Len(t, decoded.Components, 2)
	assert.Equal(t, "pole", decoded.Components[0].Kind)
	require.Len(t, decoded.PickList.Groups, 2)
	assert.Equal(t, "Poles", decoded.PickList.Groups[0].Category)
}

func TestGenerate_CSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(sampleResult(t), Config{Format: "csv", OutputDir: dir}))

	pickList, err := os.ReadFile(filepath.Join(dir, "pick_list.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"category,part_number,description,quantity\n"+
			"Poles,POLE-C-125-BUSCK,Busck Concrete Pole - 12.5m,1\n"+
			"M16 Bolts,BOLT-M16-325,M16x325mm Bolt,2\n",
		string(pickList))

	components, err := os.ReadFile(filepath.Join(dir, "components.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(components), "2,crossarm,XARM-11-A-30-1-TPS3T-T-3,150,1,2")
}

func TestGenerate_CSVRequiresDirectory(t *testing.T) {
	assert.Error(t, Generate(sampleResult(t), Config{Format: "csv"}))
	assert.Error(t, Generate(sampleResult(t), Config{Format: "html"}))
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	err := Generate(sampleResult(t), Config{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestRenderHTML(t *testing.T) {
	result := sampleResult(t)
	result.Rejected = []dto.RejectedRequest{{Line: 4, Kind: "crossarm", BuildIdentifier: "XARM-—", Error: "bad <code>"}}

	html, err := RenderHTML(result, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, html, "Generated 2026-01-02 03:04:05")
	assert.Contains(t, html, "<h2>M16 Bolts</h2>")
	assert.Contains(t, html, "POLE-C-125-BUSCK")
	assert.Contains(t, html, "bad &lt;code&gt;")
}

func TestGenerate_HTML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(sampleResult(t), Config{Format: "html", OutputDir: dir}))

	_, err := os.Stat(filepath.Join(dir, "pick_list.html"))
	assert.NoError(t, err)
}
