package appendlog

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strings"
)

// 自己定義常用的權限常量
const (
	// rw-r--r-- (擁有者讀寫，其他人唯讀) - 適用於大多數檔案
	FileModeReadOnly fs.FileMode = 0644

	// rwxr-xr-x - 適用於目錄
	FileModeDir fs.FileMode = 0755
)

// ErrMultiline 單筆資料不可包含換行
var ErrMultiline = errors.New("appendlog: line contains newline")

// Append 在檔案結尾追加一行文字
// 每次呼叫都會 開檔 → 寫入 → 關檔，不保留任何 handle
// O_APPEND 每次寫入時自動跳到文件末尾
// O_CREATE 如果文件不存在則建立
func Append(path string, line string) (err error) {
	if strings.ContainsAny(line, "\r\n") {
		return ErrMultiline
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FileModeReadOnly)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()
	_, err = file.WriteString(line + "\n")
	return err
}

// ReadAll 依序讀取每一行
// callback 回傳錯誤時立即停止；檔案不存在視為空檔
func ReadAll(path string, callback func(line string) error) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if err := callback(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
