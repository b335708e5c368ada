package util

import (
	"Murmur/internal/pkg/consts"
	"bytes"
	"path"
	"strings"

	"github.com/disintegration/imaging"
)

// AllowedImage 判断文件名扩展是否在图片白名单内
func AllowedImage(filename string) bool {
	_, ok := consts.AllowedImageExts[strings.ToLower(path.Ext(filename))]
	return ok
}

// AllowedVideo 判断文件名扩展是否在视频白名单内
func AllowedVideo(filename string) bool {
	_, ok := consts.AllowedVideoExts[strings.ToLower(path.Ext(filename))]
	return ok
}

// ProbeImage 解码校验图片内容并返回宽高，解不开的一律拒收
func ProbeImage(data []byte) (width, height int, err error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
