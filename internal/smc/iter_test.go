package smc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/smcctl/internal/iokit"
	"github.com/danmuck/smcctl/internal/smc"
	"github.com/danmuck/smcctl/internal/smc/smctest"
	"github.com/danmuck/smcctl/internal/testutil/testlog"
)

func TestValuesYieldsEveryIndex(t *testing.T) {
	testlog.Start(t)
	c := smc.NewClient(newSim())
	defer c.Close()

	it, err := c.Values()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), it.Total())

	var keys []string
	steps := 0
	for it.Next() {
		steps++
		require.Nil(t, it.StepErr())
		keys = append(keys, it.Value().Key.String())
	}
	assert.Equal(t, 4, steps)
	assert.Equal(t, []string{"TB0T", "FNum", "ACLC", "RMsg"}, keys)
	assert.False(t, it.Next(), "exhausted iterator must stay exhausted")
}

func TestValuesStepErrorsDoNotStopTheSequence(t *testing.T) {
	testlog.Start(t)
	sim := newSim()
	sim.FailIndex(0, iokit.KernFailure)
	sim.MarkNotSupported(mustKey(t, "ACLC"))
	sim.FailRead(mustKey(t, "RMsg"), iokit.KernNoAccess)
	c := smc.NewClient(sim)
	defer c.Close()

	it, err := c.Values()
	require.NoError(t, err)

	steps := 0
	var stepErrs []*smc.StepError
	var ok []string
	for it.Next() {
		steps++
		if se := it.StepErr(); se != nil {
			stepErrs = append(stepErrs, se)
			continue
		}
		ok = append(ok, it.Value().Key.String())
	}
	assert.Equal(t, 4, steps, "successes plus errors must cover every index")
	assert.Equal(t, []string{"FNum"}, ok)
	require.Len(t, stepErrs, 3)

	// index lookup failed: only the index is known
	first := stepErrs[0]
	assert.Equal(t, uint32(0), first.Index)
	assert.False(t, first.KeyKnown)
	assert.False(t, first.InfoKnown)
	var callErr *smc.CallError
	require.ErrorAs(t, first.Err, &callErr)
	assert.Equal(t, iokit.KernFailure, callErr.Code)

	// metadata lookup failed: the key is known, its info is not
	second := stepErrs[1]
	assert.Equal(t, uint32(2), second.Index)
	require.True(t, second.KeyKnown)
	assert.Equal(t, "ACLC", second.Key.String())
	assert.False(t, second.InfoKnown)
	require.ErrorIs(t, second.Err, smc.ErrNotSupported)

	// payload read failed: key, size, and type are all known
	third := stepErrs[2]
	assert.Equal(t, uint32(3), third.Index)
	require.True(t, third.KeyKnown)
	assert.Equal(t, "RMsg", third.Key.String())
	require.True(t, third.InfoKnown)
	assert.Equal(t, "ch8*", third.Info.Type.String())
	assert.Equal(t, uint32(4), third.Info.Size)
}

func TestValuesConstructionFailsWithoutCount(t *testing.T) {
	testlog.Start(t)
	sim := newSim()
	sim.FailKeyInfo(mustKey(t, "#KEY"), iokit.KernFailure)
	c := smc.NewClient(sim)
	defer c.Close()

	_, err := c.Values()
	var callErr *smc.CallError
	require.ErrorAs(t, err, &callErr)
}

func TestListAllSkipsFailures(t *testing.T) {
	testlog.Start(t)
	sim := newSim()
	sim.FailIndex(1, iokit.KernFailure)
	sim.MarkNotSupported(mustKey(t, "RMsg"))
	c := smc.NewClient(sim)
	defer c.Close()

	values, err := c.ListAll()
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, "TB0T", values[0].Key.String())
	assert.Equal(t, "ACLC", values[1].Key.String())
}

func TestStepErrorRendering(t *testing.T) {
	testlog.Start(t)
	sim := newSim()
	sim.MarkNotSupported(mustKey(t, "ACLC"))
	c := smc.NewClient(sim)
	defer c.Close()

	it, err := c.Values()
	require.NoError(t, err)
	var rendered string
	for it.Next() {
		if se := it.StepErr(); se != nil {
			rendered = se.Error()
		}
	}
	assert.Equal(t, "ACLC index: 2, error: smc: key not supported: ACLC", rendered)
}

func BenchmarkValues(b *testing.B) {
	entries := make([]smctest.Entry, 0, 64)
	for i := 0; i < 64; i++ {
		key := string([]byte{'T', 'K', byte('0' + i/10), byte('0' + i%10)})
		entries = append(entries, smctest.E(key, "ui8 ", byte(i)))
	}
	c := smc.NewClient(smctest.New(entries...))
	defer c.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it, err := c.Values()
		if err != nil {
			b.Fatal(err)
		}
		for it.Next() {
		}
	}
}
