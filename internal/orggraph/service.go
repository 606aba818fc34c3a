package orggraph

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ziadkadry99/orgchart/internal/snapshot"
)

// Service holds the current graph behind a read lock and rebuilds it
// from the snapshot files on demand. A reload constructs a wholly new
// Graph and swaps it atomically, so readers never observe a partially
// updated org.
type Service struct {
	mu       sync.RWMutex
	graph    *Graph
	channels []snapshot.ChannelOption

	exportGlob   string
	channelsPath string
}

// VersionInfo describes the currently loaded graph.
type VersionInfo struct {
	LoadedAt    time.Time `json:"loadedAt"`
	Teams       int       `json:"teams"`
	Users       int       `json:"users"`
	Diagnostics int       `json:"diagnostics"`
}

// NewService creates a service reading the directory export from
// exportGlob and, optionally, channel names from channelsPath.
func NewService(exportGlob, channelsPath string) *Service {
	return &Service{
		graph:        &Graph{Users: UserMap{}, Teams: TeamMap{}},
		exportGlob:   exportGlob,
		channelsPath: channelsPath,
	}
}

// Reload rebuilds the graph from the snapshot files and swaps it in.
// On error the previous graph stays current.
func (s *Service) Reload() (*Graph, error) {
	export, err := snapshot.LoadExportGlob(s.exportGlob)
	if err != nil {
		return nil, fmt.Errorf("loading export: %w", err)
	}

	var channels []snapshot.ChannelOption
	if s.channelsPath != "" {
		channels, err = snapshot.LoadChannelOptions(s.channelsPath)
		if err != nil {
			return nil, fmt.Errorf("loading channel lookup: %w", err)
		}
	}

	graph := Normalize(export)

	s.mu.Lock()
	s.graph = graph
	s.channels = channels
	s.mu.Unlock()

	log.Printf("orggraph: loaded %d teams, %d users, %d diagnostics",
		len(graph.Teams), len(graph.Users), len(graph.Diagnostics))
	return graph, nil
}

// Graph returns the current immutable graph snapshot.
func (s *Service) Graph() *Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// ChannelOptions returns the channel dropdown projections from the last
// successful reload, in lookup-file order.
func (s *Service) ChannelOptions() []snapshot.ChannelOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]snapshot.ChannelOption, len(s.channels))
	copy(out, s.channels)
	return out
}

// Version reports what is currently loaded.
func (s *Service) Version() VersionInfo {
	g := s.Graph()
	return VersionInfo{
		LoadedAt:    g.LoadedAt,
		Teams:       len(g.Teams),
		Users:       len(g.Users),
		Diagnostics: len(g.Diagnostics),
	}
}
