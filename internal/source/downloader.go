package source

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/JuliusKoenig/mikrotik-addresslist/internal/errors"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/hashing"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/log"
)

// Download fetches url into downloadDir as "<name>.lst" and returns the
// local path. If the content checksum matches the previous download, the
// file on disk is left untouched.
func Download(url string, name string, downloadDir string) (string, error) {
	dir := filepath.Clean(downloadDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.NewDownloadError("failed to create download directory", err)
	}

	log.Infof("Downloading source \"%s\" from URL: %s", name, url)

	client := &http.Client{}
	resp, err := client.Get(url)
	if err != nil {
		return "", errors.NewDownloadError(fmt.Sprintf("failed to download source \"%s\"", name), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewDownloadError(
			fmt.Sprintf("failed to download source \"%s\": %s", name, resp.Status), nil)
	}

	bodyProxy := hashing.NewMD5ReaderProxy(resp.Body)
	content, err := io.ReadAll(bodyProxy)
	if err != nil {
		return "", errors.NewDownloadError(fmt.Sprintf("failed to read response for source \"%s\"", name), err)
	}

	filePath := filepath.Join(dir, name+".lst")

	if changed, err := isFileChanged(bodyProxy, filePath); err != nil {
		log.Errorf("Failed to calculate source \"%s\" checksum: %v", name, err)
	} else if !changed {
		log.Infof("Source \"%s\" is not changed, skipping write to disk", name)
		return filePath, nil
	}

	if err := writeFileAtomic(filePath, content); err != nil {
		return "", errors.NewDownloadError(fmt.Sprintf("failed to write source file to %s", filePath), err)
	}
	if err := writeChecksum(bodyProxy, filePath); err != nil {
		return "", errors.NewDownloadError("failed to write source checksum", err)
	}

	log.Infof("Source \"%s\" downloaded successfully", name)
	return filePath, nil
}

// isFileChanged compares the downloaded content checksum with the stored
// ".md5" sidecar of a previous download.
func isFileChanged(checksumProxy hashing.ChecksumProvider, filePath string) (bool, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return true, nil
	}

	md5sum, err := checksumProxy.GetChecksum()
	if err != nil {
		return false, err
	}

	checksumFilePath := filePath + ".md5"
	stored, err := os.ReadFile(checksumFilePath)
	if err != nil {
		log.Debugf("Failed to read checksum file '%s', assuming it's changed: %v", checksumFilePath, err)
		return true, nil
	}

	return string(stored) != md5sum, nil
}

func writeChecksum(checksumProxy hashing.ChecksumProvider, filePath string) error {
	checksum, err := checksumProxy.GetChecksum()
	if err != nil {
		return err
	}
	return writeFileAtomic(filePath+".md5", []byte(checksum))
}

// writeFileAtomic writes content to a temp file in the target directory and
// renames it into place. Concurrent readers of the same downloaded source
// never observe a truncated file.
func writeFileAtomic(filePath string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(filePath), filepath.Base(filePath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
