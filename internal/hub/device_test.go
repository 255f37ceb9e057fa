package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceRegistryGetOrCreateIsIdempotent(t *testing.T) {
	reg := NewDeviceRegistry()
	id := DeviceIdentifier("entry", 1)

	first := reg.GetOrCreate("entry", id, "Cam", Manufacturer, Manufacturer)
	second := reg.GetOrCreate("entry", id, "Cam renamed", Manufacturer, Manufacturer)

	assert.Same(t, first, second)
	assert.Equal(t, "Cam", second.Name)
	assert.Len(t, reg.EntriesForConfigEntry("entry"), 1)
}

func TestDeviceRegistryRemove(t *testing.T) {
	reg := NewDeviceRegistry()
	device := reg.GetOrCreate("entry", DeviceIdentifier("entry", 1), "Cam", Manufacturer, Manufacturer)

	require.True(t, reg.Remove(device.ID))
	assert.False(t, reg.Remove(device.ID))
	assert.Nil(t, reg.Get(device.ID))
	assert.Empty(t, reg.EntriesForConfigEntry("entry"))

	// the identifier is free for re-registration afterwards and keeps its id
	recreated := reg.GetOrCreate("entry", DeviceIdentifier("entry", 1), "Cam", Manufacturer, Manufacturer)
	assert.Equal(t, device.ID, recreated.ID)
}

func TestDeviceIDStableAcrossRegistryRebuilds(t *testing.T) {
	first := NewDeviceRegistry().
		GetOrCreate("entry", DeviceIdentifier("entry", 1), "Cam", Manufacturer, Manufacturer)
	second := NewDeviceRegistry().
		GetOrCreate("entry", DeviceIdentifier("entry", 1), "Cam", Manufacturer, Manufacturer)

	assert.Equal(t, first.ID, second.ID)

	other := NewDeviceRegistry().
		GetOrCreate("entry", DeviceIdentifier("entry", 2), "Cam", Manufacturer, Manufacturer)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestDeviceRegistryScopesByConfigEntry(t *testing.T) {
	reg := NewDeviceRegistry()
	reg.GetOrCreate("a", DeviceIdentifier("a", 1), "A1", Manufacturer, Manufacturer)
	reg.GetOrCreate("a", DeviceIdentifier("a", 2), "A2", Manufacturer, Manufacturer)
	reg.GetOrCreate("b", DeviceIdentifier("b", 1), "B1", Manufacturer, Manufacturer)

	assert.Len(t, reg.EntriesForConfigEntry("a"), 2)
	assert.Len(t, reg.EntriesForConfigEntry("b"), 1)
}
