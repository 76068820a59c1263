package smc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/smcctl/internal/iokit"
	"github.com/danmuck/smcctl/internal/smc"
	"github.com/danmuck/smcctl/internal/smc/smctest"
	"github.com/danmuck/smcctl/internal/smc/wire"
	"github.com/danmuck/smcctl/internal/testutil/testlog"
)

func mustKey(t *testing.T, s string) wire.Key {
	t.Helper()
	k, err := wire.ParseKey(s)
	require.NoError(t, err)
	return k
}

func newSim() *smctest.Sim {
	return smctest.New(
		smctest.E("TB0T", "flt ", 0x00, 0x00, 0x80, 0x3F),
		smctest.E("FNum", "ui8 ", 0x02),
		smctest.E("ACLC", "ui8 ", 0x00),
		smctest.E("RMsg", "ch8*", 'O', 'K', 0x00, 0x00),
	)
}

func TestReadKey(t *testing.T) {
	testlog.Start(t)
	c := smc.NewClient(newSim())
	defer c.Close()

	kv, err := c.ReadKey(mustKey(t, "TB0T"))
	require.NoError(t, err)
	assert.Equal(t, "TB0T", kv.Key.String())
	assert.Equal(t, "flt ", kv.Info.Type.String())
	assert.Equal(t, uint32(4), kv.Info.Size)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, kv.ValidBytes())

	val, ok := kv.Decode()
	require.True(t, ok)
	f, ok := val.(smc.Float32)
	require.True(t, ok)
	assert.Equal(t, float32(1.0), f.LE)
}

func TestReadKeyNotSupported(t *testing.T) {
	testlog.Start(t)
	sim := newSim()
	sim.MarkNotSupported(mustKey(t, "ACLC"))
	c := smc.NewClient(sim)
	defer c.Close()

	_, err := c.ReadKey(mustKey(t, "ACLC"))
	require.ErrorIs(t, err, smc.ErrNotSupported)

	// unknown keys look the same as unsupported ones
	_, err = c.ReadKey(mustKey(t, "ZZZZ"))
	require.ErrorIs(t, err, smc.ErrNotSupported)
}

func TestReadKeyChannelError(t *testing.T) {
	testlog.Start(t)
	sim := newSim()
	sim.FailRead(mustKey(t, "TB0T"), iokit.KernNoAccess)
	c := smc.NewClient(sim)
	defer c.Close()

	_, err := c.ReadKey(mustKey(t, "TB0T"))
	var callErr *smc.CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, iokit.KernNoAccess, callErr.Code)
}

func TestGetKeyInfoIdempotent(t *testing.T) {
	testlog.Start(t)
	c := smc.NewClient(newSim())
	defer c.Close()

	key := mustKey(t, "FNum")
	first, err := c.GetKeyInfo(key)
	require.NoError(t, err)
	second, err := c.GetKeyInfo(key)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, uint32(1), first.Size)
	assert.Equal(t, "ui8 ", first.Type.String())
}

func TestWriteKey(t *testing.T) {
	testlog.Start(t)
	sim := newSim()
	c := smc.NewClient(sim)
	defer c.Close()

	key := mustKey(t, "ACLC")
	require.NoError(t, c.WriteKey(key, []byte{0x03}))

	stored, ok := sim.Bytes(key)
	require.True(t, ok)
	assert.Equal(t, []byte{0x03}, stored)
}

func TestWriteKeyPayloadTooLong(t *testing.T) {
	testlog.Start(t)
	sim := newSim()
	c := smc.NewClient(sim)
	defer c.Close()

	err := c.WriteKey(mustKey(t, "ACLC"), make([]byte, wire.BytesLen+1))
	require.ErrorIs(t, err, smc.ErrInvalidArgument)
	assert.Zero(t, sim.Calls, "oversized payload must be rejected before any call")
}

func TestWriteKeySizeMismatch(t *testing.T) {
	testlog.Start(t)
	sim := newSim()
	c := smc.NewClient(sim)
	defer c.Close()

	key := mustKey(t, "ACLC")
	err := c.WriteKey(key, []byte{0x01, 0x02})
	require.ErrorIs(t, err, smc.ErrInvalidArgument)

	// the verification read ran, the write call never did
	assert.Equal(t, 2, sim.Calls)
	stored, _ := sim.Bytes(key)
	assert.Equal(t, []byte{0x00}, stored)
}

func TestWriteThenReadBack(t *testing.T) {
	testlog.Start(t)
	c := smc.NewClient(newSim())
	defer c.Close()

	key := mustKey(t, "FNum")
	before, err := c.ReadKey(key)
	require.NoError(t, err)
	require.NoError(t, c.WriteKey(key, make([]byte, before.Info.Size)))

	after, err := c.ReadKey(key)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, after.ValidBytes())
}

func TestKeysCount(t *testing.T) {
	testlog.Start(t)
	c := smc.NewClient(newSim())
	defer c.Close()

	n, err := c.KeysCount()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), n)
}

func TestKeysCountBadSize(t *testing.T) {
	testlog.Start(t)
	sim := newSim()
	var tag wire.TypeTag
	copy(tag[:], "ui16")
	sim.OverrideKeyList(tag, []byte{0x00, 0x04})
	c := smc.NewClient(sim)
	defer c.Close()

	_, err := c.KeysCount()
	require.ErrorIs(t, err, smc.ErrKeyListSize)
}

func TestReadIndex(t *testing.T) {
	testlog.Start(t)
	c := smc.NewClient(newSim())
	defer c.Close()

	kv, err := c.ReadIndex(1)
	require.NoError(t, err)
	assert.Equal(t, "FNum", kv.Key.String())

	_, err = c.ReadIndex(99)
	var callErr *smc.CallError
	require.ErrorAs(t, err, &callErr)
}

func TestCloseReleasesChannelOnce(t *testing.T) {
	testlog.Start(t)
	sim := newSim()
	c := smc.NewClient(sim)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, sim.CloseCalls)

	_, err := c.KeysCount()
	require.ErrorIs(t, err, smc.ErrClosed)
}
