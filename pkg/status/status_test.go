package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStatus = `<?xml version="1.0" encoding="utf-8"?>
<status>
  <jvm>
    <memory free='104857600' total='268435456' max='536870912'/>
    <memorypool name='G1 Eden Space' type='Heap memory' usageInit='28311552' usageCommitted='112197632' usageMax='-1' usageUsed='67108864'/>
    <memorypool name='Metaspace' type='Non-heap memory' usageInit='0' usageCommitted='40370176' usageMax='-1' usageUsed='39272192'/>
  </jvm>
  <connector name='"http-nio-8080"'>
    <threadInfo maxThreads="200" currentThreadCount="10" currentThreadsBusy="2"/>
    <requestInfo maxTime="842" processingTime="4312" requestCount="1293" errorCount="7" bytesReceived="0" bytesSent="2399104"/>
    <workers></workers>
  </connector>
</status>`

func TestParse(t *testing.T) {
	st, err := Parse([]byte(sampleStatus))
	require.NoError(t, err)

	assert.Equal(t, int64(104857600), st.Memory.Free)
	assert.Equal(t, int64(268435456), st.Memory.Total)
	assert.Equal(t, int64(536870912), st.Memory.Max)
	assert.Equal(t, int64(268435456-104857600), st.Memory.Used())

	require.Len(t, st.MemoryPools, 2)
	assert.Equal(t, "G1 Eden Space", st.MemoryPools[0].Name)
	assert.Equal(t, int64(67108864), st.MemoryPools[0].Used)

	require.Len(t, st.Connectors, 1)
	conn := st.Connectors[0]
	assert.Equal(t, "http-nio-8080", conn.Name, "connector name should be unquoted")
	assert.Equal(t, 200, conn.MaxThreads)
	assert.Equal(t, 2, conn.CurrentThreadsBusy)
	assert.Equal(t, int64(1293), conn.RequestCount)
	assert.Equal(t, int64(7), conn.ErrorCount)
}

func TestParse_NotStatusDocument(t *testing.T) {
	_, err := Parse([]byte(`<html><body>nope</body></html>`))
	require.Error(t, err)
}

func TestParse_MalformedXML(t *testing.T) {
	_, err := Parse([]byte(`<status><jvm>`))
	require.Error(t, err)
}

func TestParse_EmptySections(t *testing.T) {
	st, err := Parse([]byte(`<status></status>`))
	require.NoError(t, err)
	assert.Zero(t, st.Memory)
	assert.Empty(t, st.Connectors)
}
