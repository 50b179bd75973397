package hotload

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"time"
)

// maxHashSize 超过该大小的文件只比较大小与修改时间
const maxHashSize = 1 << 20

// fileState 文件的元数据与内容摘要，用来过滤没有真实变化的事件
type fileState struct {
	modTime time.Time
	size    int64
	hash    string
}

// stateCache 路径到最近一次状态的映射
type stateCache map[string]fileState

func newFileState(path string, info fs.FileInfo) fileState {
	return fileState{
		modTime: info.ModTime(),
		size:    info.Size(),
		hash:    hashFile(path, info.Size()),
	}
}

// sameContent 有摘要时按摘要比较，否则按大小与修改时间比较
func (s fileState) sameContent(other fileState) bool {
	if s.hash != "" && other.hash != "" {
		return s.hash == other.hash
	}
	const tolerance = 100 * time.Millisecond
	return s.size == other.size && s.modTime.Sub(other.modTime).Abs() <= tolerance
}

// hashFile 计算小文件的 md5，失败或文件过大时返回空串
func hashFile(path string, size int64) string {
	if size > maxHashSize {
		return ""
	}
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return ""
	}
	return hex.EncodeToString(h.Sum(nil))
}
