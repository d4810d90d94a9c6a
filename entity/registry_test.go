package entity

import (
	"testing"
	"time"

	"github.com/XANi/shm2mqtt/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "shm_1900123456_total_power", Slugify("shm_1900123456-Total Power"))
	assert.Equal(t, "a_b", Slugify("--A  b--"))
	assert.Equal(t, "", Slugify("---"))
}

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry("shm", "1900123456")
	assert.Equal(t, "shm_1900123456", r.UniqueID())
	e, err := r.Add(descriptor.EntityDescriptor{Key: "pconsume", Name: "Active Power Consumed"})
	require.NoError(t, err)
	assert.Equal(t, "shm/1900123456/pconsume", e.Topic)
	assert.Equal(t, "shm_1900123456_active_power_consumed", e.UniqueID)
	assert.Equal(t, "sensor.shm_1900123456_active_power_consumed", e.EntityID)
	assert.False(t, e.Enabled)

	_, err = r.Add(descriptor.EntityDescriptor{Key: "pconsume", Name: "Other"})
	assert.ErrorIs(t, err, descriptor.ErrDuplicateKey)

	_, err = r.Add(descriptor.EntityDescriptor{Key: "pconsume2", Name: "active power, consumed"})
	assert.ErrorIs(t, err, ErrDuplicateID)
	_, ok := r.Entity("pconsume2")
	assert.False(t, ok, "rejected entity is not registered")
	assert.Len(t, r.Entities(), 1)
}

func TestRegistryUpdate(t *testing.T) {
	r := NewRegistry("shm", "1")
	_, err := r.Add(descriptor.EntityDescriptor{Key: "a", Name: "A"})
	require.NoError(t, err)
	_, err = r.Add(descriptor.EntityDescriptor{Key: "b", Name: "B", EntityRegistryEnabledDefault: true})
	require.NoError(t, err)
	ts := time.Now()

	r.Update(Update{Kind: UpdateState, Key: "a", Value: int64(10), TS: ts})
	r.Update(Update{Kind: UpdateState, Key: "b", Value: int64(20), TS: ts})
	r.Update(Update{Kind: UpdateState, Key: "missing", Value: int64(30), TS: ts})

	a, ok := r.Entity("a")
	require.True(t, ok)
	assert.Nil(t, a.Value, "disabled entity keeps no state")
	assert.False(t, r.Enabled("a"))
	assert.True(t, r.Enabled("b"))
	assert.False(t, r.Enabled("missing"))
	b, _ := r.Entity("b")
	assert.Equal(t, int64(20), b.Value)
	assert.Equal(t, ts, b.Updated)

	require.NoError(t, r.SetEnabled("a", true))
	r.Update(Update{Kind: UpdateState, Key: "a", Value: int64(11), TS: ts})
	a, _ = r.Entity("a")
	assert.Equal(t, int64(11), a.Value)
	assert.True(t, r.Enabled("a"))
	assert.Error(t, r.SetEnabled("missing", true))
}

func TestRegistryVersion(t *testing.T) {
	r := NewRegistry("shm", "1")
	r.Update(Update{Kind: UpdateVersion, Key: "version", Value: "2.13.4.R"})
	assert.Equal(t, "2.13.4.R", r.Device().SwVersion)
}

func TestRegistryEntitiesOrder(t *testing.T) {
	r := NewRegistry("shm", "1")
	for _, k := range []string{"z", "a", "m"} {
		_, err := r.Add(descriptor.EntityDescriptor{Key: k, Name: k})
		require.NoError(t, err)
	}
	var keys []string
	for _, e := range r.Entities() {
		keys = append(keys, e.Descriptor.Key)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)
}
