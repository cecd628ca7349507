package snapshot

import (
	"os"

	json "github.com/goccy/go-json"

	"linguactl/internal/models"
	"linguactl/internal/providers"
	"linguactl/internal/services"
	"linguactl/internal/snapshot/interfaces"
)

// FileManager persists the last successfully fetched account snapshot so a
// returning user sees data before the first refresh completes. The file is
// a cache, never an authority: it only ever seeds an empty sync state, and
// the session store removes it whenever the session ends.
type FileManager struct {
	sync       services.AccountSyncInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, accountSync services.AccountSyncInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		sync:       accountSync,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snap := f.sync.Current()
	if snap == nil {
		return nil
	}

	jsonData, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snap models.AccountSnapshot
	if err := json.Unmarshal(decompressedData, &snap); err != nil {
		f.logger.Warnf(providers.TypeApp, "Discarding unreadable snapshot cache: %s", err)
		return nil
	}

	f.sync.Restore(&snap)
	return nil
}

func (f *FileManager) Close() {
	f.compressor.Close()
}
