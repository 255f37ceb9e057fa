package motioneye

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraRoundTripPreservesUnknownKeys(t *testing.T) {
	raw := `{
		"id": 2,
		"name": "Front door",
		"root_directory": "/var/lib/motioneye/Camera2",
		"motion_detection": true,
		"streaming_port": 8082,
		"frame_change_threshold": "4.5%",
		"preserve_movies": 7
	}`
	var cam Camera
	require.NoError(t, json.Unmarshal([]byte(raw), &cam))

	assert.Equal(t, 2, cam.ID)
	assert.Equal(t, "Front door", cam.Name)
	assert.Equal(t, "/var/lib/motioneye/Camera2", cam.RootDirectory)
	assert.True(t, cam.MotionDetection)
	assert.Equal(t, 8082, cam.StreamingPort)
	assert.True(t, cam.Acceptable())

	out, err := json.Marshal(&cam)
	require.NoError(t, err)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &result))
	assert.Equal(t, "4.5%", result["frame_change_threshold"])
	assert.Equal(t, float64(7), result["preserve_movies"])
	assert.Equal(t, float64(2), result["id"])
}

func TestCameraRoundTripKeepsExplicitZeroValues(t *testing.T) {
	raw := `{"id":1,"name":"cam","root_directory":"","streaming_port":0}`
	var cam Camera
	require.NoError(t, json.Unmarshal([]byte(raw), &cam))

	out, err := json.Marshal(&cam)
	require.NoError(t, err)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &result))
	assert.Contains(t, result, KeyRootDirectory)
	assert.Equal(t, "", result[KeyRootDirectory])
	assert.Contains(t, result, KeyStreamingPort)
	assert.Equal(t, float64(0), result[KeyStreamingPort])
}

func TestCameraStringKeys(t *testing.T) {
	var cam Camera
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"cam","left_text":"timestamp"}`), &cam))
	assert.Equal(t, TextOverlayTimestamp, cam.Str(KeyLeftText))
	assert.Equal(t, "", cam.Str(KeyRightText))

	cam.SetStr(KeyRightText, TextOverlayCustomText)
	cam.SetStr(KeyCustomRightText, "back door")
	assert.Equal(t, "back door", cam.Str(KeyCustomRightText))

	out, err := json.Marshal(&cam)
	require.NoError(t, err)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &result))
	assert.Equal(t, TextOverlayCustomText, result[KeyRightText])
}

func TestCameraAcceptable(t *testing.T) {
	var noID Camera
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x"}`), &noID))
	assert.False(t, noID.Acceptable())

	var noName Camera
	require.NoError(t, json.Unmarshal([]byte(`{"id":1}`), &noName))
	assert.False(t, noName.Acceptable())

	var nilCam *Camera
	assert.False(t, nilCam.Acceptable())

	assert.True(t, NewCamera(1, "x").Acceptable())
}

func TestCameraFlags(t *testing.T) {
	cam := NewCamera(1, "cam")
	assert.False(t, cam.Flag(KeyMotionDetection))
	cam.SetFlag(KeyMotionDetection, true)
	assert.True(t, cam.Flag(KeyMotionDetection))

	// unknown flags land in the preserved raw config
	cam.SetFlag("smart_mask_sluggishness", true)
	assert.True(t, cam.Flag("smart_mask_sluggishness"))
	out, err := json.Marshal(cam)
	require.NoError(t, err)
	assert.Contains(t, string(out), "smart_mask_sluggishness")
}

func TestCameraCloneIsIndependent(t *testing.T) {
	var cam Camera
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"a","actions":["snapshot"],"extra_key":1}`), &cam))

	dup := cam.Clone()
	dup.Name = "b"
	dup.SetFlag("extra_flag", true)
	dup.Actions[0] = "lock"

	assert.Equal(t, "a", cam.Name)
	assert.Equal(t, "snapshot", cam.Actions[0])
	assert.False(t, cam.Flag("extra_flag"))
}
