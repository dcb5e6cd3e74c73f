// Package tracker implements tracking of data generated during an
// experiment
package tracker

import (
	"encoding/gob"
	"log"
	"os"

	ts "github.com/gopherrl/tabular/timestep"
)

// Tracker caches data from the timesteps of an experiment. An
// experiment sends every environmental timestep to its Trackers using
// Track(). Each Tracker determines which data from the timestep it
// caches. Save() flushes all cached data to disk, usually after the
// experiment has finished.
type Tracker interface {
	Track(ts.TimeStep)
	Save()
}

// saveGob encodes data to a file with gob, exiting on failure
func saveGob(filename string, data interface{}) {
	file, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(data); err != nil {
		log.Fatalf("could not encode tracked data: %v", err)
	}
}

// LoadFloats loads a gob-encoded []float64 saved by a Tracker, such as
// the episodic returns saved by the Return Tracker
func LoadFloats(filename string) []float64 {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	var data []float64
	de := gob.NewDecoder(file)
	if err = de.Decode(&data); err != nil {
		log.Fatalf("could not decode tracked data: %v", err)
	}
	return data
}

// LoadInts loads a gob-encoded []int saved by a Tracker, such as the
// episode lengths saved by the EpisodeLength Tracker
func LoadInts(filename string) []int {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	var data []int
	de := gob.NewDecoder(file)
	if err = de.Decode(&data); err != nil {
		log.Fatalf("could not decode tracked data: %v", err)
	}
	return data
}
