package common

import "strings"

const KindImage = "image"
const KindVideo = "video"

var AllKinds = []string{KindImage, KindVideo}

func KindForContentType(contentType string) string {
	if strings.HasPrefix(contentType, "video/") {
		return KindVideo
	}
	return KindImage
}
