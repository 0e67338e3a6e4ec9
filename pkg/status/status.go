// Package status parses the XML document served by the Tomcat Manager
// status endpoint into a typed summary.
//
// The document comes from manager.TomcatManager.StatusXML. Only the parts
// that are stable across server versions are surfaced: JVM memory, memory
// pools, and per-connector thread and request counters.
package status

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// ServerStatus is the parsed status document.
type ServerStatus struct {
	Memory      Memory
	MemoryPools []MemoryPool
	Connectors  []Connector
}

// Memory holds the JVM heap counters, in bytes.
type Memory struct {
	Free  int64
	Total int64
	Max   int64
}

// Used returns total minus free.
func (m Memory) Used() int64 {
	return m.Total - m.Free
}

// MemoryPool is one JVM memory pool.
type MemoryPool struct {
	Name      string
	Type      string
	Used      int64
	Committed int64
	Max       int64
}

// Connector is one Tomcat connector with its thread and request counters.
type Connector struct {
	Name string

	MaxThreads         int
	CurrentThreadCount int
	CurrentThreadsBusy int

	RequestCount   int64
	ErrorCount     int64
	ProcessingTime int64
	MaxTime        int64
	BytesReceived  int64
	BytesSent      int64
}

// Parse parses a status XML document.
func Parse(data []byte) (*ServerStatus, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(string(data)); err != nil {
		return nil, fmt.Errorf("parse status xml: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "status" {
		return nil, fmt.Errorf("not a status document")
	}

	st := &ServerStatus{}

	if jvm := root.SelectElement("jvm"); jvm != nil {
		if mem := jvm.SelectElement("memory"); mem != nil {
			st.Memory = Memory{
				Free:  attrInt64(mem, "free"),
				Total: attrInt64(mem, "total"),
				Max:   attrInt64(mem, "max"),
			}
		}
		for _, pool := range jvm.SelectElements("memorypool") {
			st.MemoryPools = append(st.MemoryPools, MemoryPool{
				Name:      attr(pool, "name"),
				Type:      attr(pool, "type"),
				Used:      attrInt64(pool, "usageUsed"),
				Committed: attrInt64(pool, "usageCommitted"),
				Max:       attrInt64(pool, "usageMax"),
			})
		}
	}

	for _, el := range root.SelectElements("connector") {
		// connector names arrive quoted, e.g. name='"http-nio-8080"'
		conn := Connector{Name: strings.Trim(attr(el, "name"), `"`)}
		if ti := el.SelectElement("threadInfo"); ti != nil {
			conn.MaxThreads = attrInt(ti, "maxThreads")
			conn.CurrentThreadCount = attrInt(ti, "currentThreadCount")
			conn.CurrentThreadsBusy = attrInt(ti, "currentThreadsBusy")
		}
		if ri := el.SelectElement("requestInfo"); ri != nil {
			conn.RequestCount = attrInt64(ri, "requestCount")
			conn.ErrorCount = attrInt64(ri, "errorCount")
			conn.ProcessingTime = attrInt64(ri, "processingTime")
			conn.MaxTime = attrInt64(ri, "maxTime")
			conn.BytesReceived = attrInt64(ri, "bytesReceived")
			conn.BytesSent = attrInt64(ri, "bytesSent")
		}
		st.Connectors = append(st.Connectors, conn)
	}

	return st, nil
}

func attr(el *etree.Element, name string) string {
	if a := el.SelectAttr(name); a != nil {
		return a.Value
	}
	return ""
}

func attrInt(el *etree.Element, name string) int {
	n, _ := strconv.Atoi(attr(el, name))
	return n
}

func attrInt64(el *etree.Element, name string) int64 {
	n, _ := strconv.ParseInt(attr(el, name), 10, 64)
	return n
}
