// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package fsevent records file system operations as generic events built
// with the same metadata primitive as triggers. Operations go through an
// explicit Recorder; nothing is hooked globally.
package fsevent

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/DataDog/datadog-serverless-trigger/pkg/serverless/trigger"
	"github.com/DataDog/datadog-serverless-trigger/pkg/util/log"
)

const (
	// Origin is the origin of every file system event
	Origin = "fs"
	// ResourceType is the resource type of every file system event
	ResourceType = "file_system"

	// OperationReadFile is the operation of a whole file read
	OperationReadFile = "readFile"
	// OperationWriteFile is the operation of a whole file write
	OperationWriteFile = "writeFile"
)

// NewFileEvent builds the event of one completed file operation on path.
// A non-nil opErr marks the event as errored.
func NewFileEvent(n *trigger.Normalizer, operation, path string, start, end time.Time, opErr error) *trigger.Event {
	e := trigger.NewEvent(Origin, ResourceType, start)
	e.Resource.Name = filepath.Base(path)
	e.Resource.Operation = operation
	if end.After(start) {
		e.Duration = end.Sub(start)
	}

	annotations := map[string]interface{}{
		"file_name": path,
	}
	if opErr != nil {
		e.ErrorCode = trigger.ErrorCodeException
		annotations["error_message"] = opErr.Error()
	}
	n.AddToMetadata(e, annotations, nil)
	return e
}

// Recorder performs file operations on a file system and emits one event
// per operation.
type Recorder struct {
	fs         afero.Fs
	normalizer *trigger.Normalizer
	emit       func(*trigger.Event)
	now        func() time.Time
}

// NewRecorder returns a Recorder over fs sending events to emit. A nil fs
// is the OS file system.
func NewRecorder(fs afero.Fs, n *trigger.Normalizer, emit func(*trigger.Event)) *Recorder {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if n == nil {
		n = trigger.NewNormalizer(false, trigger.DefaultMaxPayloadSize)
	}
	return &Recorder{
		fs:         fs,
		normalizer: n,
		emit:       emit,
		now:        time.Now,
	}
}

// ReadFile reads the whole file at path.
func (r *Recorder) ReadFile(path string) ([]byte, error) {
	start := r.now()
	data, err := afero.ReadFile(r.fs, path)

	e := NewFileEvent(r.normalizer, OperationReadFile, path, start, r.now(), err)
	if err == nil {
		r.normalizer.AddToMetadata(e, map[string]interface{}{
			"file_size": len(data),
		}, map[string]interface{}{
			"data": string(data),
		})
	}
	r.send(e)
	return data, err
}

// WriteFile writes data to the file at path, creating it with perm if needed.
func (r *Recorder) WriteFile(path string, data []byte, perm os.FileMode) error {
	start := r.now()
	err := afero.WriteFile(r.fs, path, data, perm)

	e := NewFileEvent(r.normalizer, OperationWriteFile, path, start, r.now(), err)
	if err == nil {
		r.normalizer.AddToMetadata(e, map[string]interface{}{
			"file_size": len(data),
		}, map[string]interface{}{
			"data": string(data),
		})
	}
	r.send(e)
	return err
}

func (r *Recorder) send(e *trigger.Event) {
	if r.emit == nil {
		log.Tracef("Dropping %s event on %s, no emitter", e.Resource.Operation, e.Resource.Name)
		return
	}
	r.emit(e)
}
