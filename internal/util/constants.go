package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 上传大小上限 20MB
const MaxUploadSize = 20 << 20

const (
	MimeImage = "image/"
	MimeText  = "text/"
	MimePDF   = "application/pdf"
	MimeZip   = "application/zip" // docx/pptx/xlsx 都是 zip 容器
)

var AllowedUploadTypes = []string{MimeImage, MimeText, MimePDF, MimeZip, "application/octet-stream"}

// 附件类型, 与客户端 Attachment.type 一致
const (
	AttachmentDoc   = "doc"
	AttachmentSlide = "slide"
	AttachmentSheet = "sheet"
	AttachmentPPT   = "ppt"
	AttachmentPDF   = "pdf"
	AttachmentFile  = "file"
)
