// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParseReport(t *testing.T) {
	app := newLoadedApp(t)
	result := app.Parser().Parse("show log since today")

	report := NewParseReport(result, 0)
	assert.Equal(t, result.ID, report.ParseID)
	assert.Equal(t, []string{"show", "log", "since", "today"}, report.Tokens)
	require.Equal(t, len(result.Possibilities), report.Total)
	require.NotEmpty(t, report.Possibilities)

	best := report.Possibilities[0]
	assert.Equal(t, 1, best.Rank)
	assert.Equal(t, "show log", best.Command)
	assert.Equal(t, result.Best().Score, best.Score)
	if diff := cmp.Diff(map[string]string{"since": "today"}, best.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}

	want := []MatchReport{
		{Token: "show", Index: 0, Argument: "show"},
		{Token: "log", Index: 1, Argument: "log"},
		{Token: "since", Index: 2, Argument: "since"},
		{Token: "today", Index: 3, Argument: "since", Data: true},
	}
	if diff := cmp.Diff(want, best.Matches); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, best.Missing)
}

func TestNewParseReport_MaxAndMissing(t *testing.T) {
	app := newLoadedApp(t)
	result := app.Parser().Parse("show")
	require.Len(t, result.Possibilities, 2)

	report := NewParseReport(result, 1)
	assert.Equal(t, 2, report.Total)
	require.Len(t, report.Possibilities, 1)
	assert.Len(t, report.Possibilities[0].Missing, 1)
}

func TestNewParseReport_Empty(t *testing.T) {
	app := newLoadedApp(t)
	report := NewParseReport(app.Parser().Parse(""), 0)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tokens":[]`)
	assert.Contains(t, string(data), `"possibilities":[]`)
}

func TestJSONResponse(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONResponse("check", map[string]int{"commands": 3}).Write(&buf))

	var resp struct {
		Success   bool           `json:"success"`
		Data      map[string]int `json:"data"`
		Error     *string        `json:"error"`
		Timestamp string         `json:"timestamp"`
		Command   string         `json:"command"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Data["commands"])
	assert.Nil(t, resp.Error)
	assert.Equal(t, "check", resp.Command)
	_, err := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err)

	errResp := NewJSONErrorResponse("parse", errors.New("ambiguous")).WithData([]string{"a"})
	assert.False(t, errResp.Success)
	assert.Equal(t, "ambiguous", *errResp.Error)
	assert.Equal(t, []string{"a"}, errResp.Data)
}
