// Restaurant Recommendation - Hybrid Graph Recommendations and Geospatial Search
// Copyright 2026 Gayathri Priya (Gayathri-Priya98)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Gayathri-Priya98/restaurant-recommendation

package embedding

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"
)

// Metadata describes a stored weights artifact.
type Metadata struct {
	Name      string
	Version   int
	InputDim  int
	HiddenDim int
	OutputDim int
	TrainedAt time.Time
	SavedAt   time.Time
	Checksum  string
	SizeBytes int64
}

// storedFile is the on-disk artifact layout: metadata followed by the
// gzip-compressed gob encoding of the model weights.
type storedFile struct {
	Metadata       Metadata
	CompressedData []byte
}

// Save writes the model weights to path as a gzip-compressed gob artifact
// with a checksummed metadata header.
func Save(path string, m *Model, meta Metadata) error {
	if err := m.validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m); err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}
	raw := buf.Bytes()

	hash := sha256.Sum256(raw)
	meta.Checksum = hex.EncodeToString(hash[:])
	meta.InputDim = m.InputDim()
	meta.HiddenDim = m.HiddenDim()
	meta.OutputDim = m.OutputDim()
	meta.SavedAt = time.Now()

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw); err != nil {
		return fmt.Errorf("compress weights: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}
	meta.SizeBytes = int64(compressed.Len())

	f, err := os.Create(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return fmt.Errorf("create weights file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sf := storedFile{Metadata: meta, CompressedData: compressed.Bytes()}
	if err := gob.NewEncoder(f).Encode(sf); err != nil {
		return fmt.Errorf("write weights file: %w", err)
	}
	return nil
}

// Load reads a weights artifact from path, verifying the stored checksum
// and the declared dimensions before returning the model.
func Load(path string) (*Model, *Metadata, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, nil, fmt.Errorf("open weights file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, nil, fmt.Errorf("read weights file: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress weights: %w", err)
	}
	defer func() { _ = gzr.Close() }()

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("read decompressed weights: %w", err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, nil, fmt.Errorf("weights checksum mismatch: expected %s, got %s", sf.Metadata.Checksum, checksum)
	}

	var m Model
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&m); err != nil {
		return nil, nil, fmt.Errorf("decode weights: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, nil, err
	}
	if got, want := m.InputDim(), sf.Metadata.InputDim; want != 0 && got != want {
		return nil, nil, fmt.Errorf("weights declare input dim %d but contain %d", want, got)
	}
	if got, want := m.OutputDim(), sf.Metadata.OutputDim; want != 0 && got != want {
		return nil, nil, fmt.Errorf("weights declare output dim %d but contain %d", want, got)
	}

	return &m, &sf.Metadata, nil
}
