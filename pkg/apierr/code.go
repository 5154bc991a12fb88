package apierr

import "strconv"

// Code identifies the outcome of a call. Zero means success.
type Code int

const (
	None                              Code = 0
	Unauthorized                      Code = 1
	InvalidResponse                   Code = 2
	EmptyResponse                     Code = 3
	EmptyRequest                      Code = 4
	UnknownCommand                    Code = 5
	NoDataFound                       Code = 6
	RequestFailed                     Code = 7
	CannotMakeRequest                 Code = 8
	InsufficientParameters            Code = 9
	Forbidden                         Code = 10
	RequiredParametersMissing         Code = 11
	UniqueParamNotUnique              Code = 12
	BeforeCampaignStart               Code = 13
	AfterCampaignEnd                  Code = 14
	CouldntSave                       Code = 15
	VersionMismatch                   Code = 16
	AttachmentsNotSupportedWithMethod Code = 17
	MalformedAttachmentList           Code = 18
	AttachmentFileNotReadable         Code = 19
	AttachmentUploadFailed            Code = 20
	AttachmentTypeNotAllowed          Code = 21
	RegistrationLimitReached          Code = 22
	MultipleValuesNotAllowed          Code = 23
)

var codeNames = [...]string{
	None:                              "None",
	Unauthorized:                      "Unauthorized",
	InvalidResponse:                   "InvalidResponse",
	EmptyResponse:                     "EmptyResponse",
	EmptyRequest:                      "EmptyRequest",
	UnknownCommand:                    "UnknownCommand",
	NoDataFound:                       "NoDataFound",
	RequestFailed:                     "RequestFailed",
	CannotMakeRequest:                 "CannotMakeRequest",
	InsufficientParameters:            "InsufficientParameters",
	Forbidden:                         "Forbidden",
	RequiredParametersMissing:         "RequiredParametersMissing",
	UniqueParamNotUnique:              "UniqueParamNotUnique",
	BeforeCampaignStart:               "BeforeCampaignStart",
	AfterCampaignEnd:                  "AfterCampaignEnd",
	CouldntSave:                       "CouldntSave",
	VersionMismatch:                   "VersionMismatch",
	AttachmentsNotSupportedWithMethod: "AttachmentsNotSupportedWithMethod",
	MalformedAttachmentList:           "MalformedAttachmentList",
	AttachmentFileNotReadable:         "AttachmentFileNotReadable",
	AttachmentUploadFailed:            "AttachmentUploadFailed",
	AttachmentTypeNotAllowed:          "AttachmentTypeNotAllowed",
	RegistrationLimitReached:          "RegistrationLimitReached",
	MultipleValuesNotAllowed:          "MultipleValuesNotAllowed",
}

// String returns the constant name, or Code(n) for codes this library does
// not know about. The service may introduce new codes at any time.
func (c Code) String() string {
	if c >= 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "Code(" + strconv.Itoa(int(c)) + ")"
}

// Local reports whether the code is produced by this library rather than
// passed through from the service.
func (c Code) Local() bool {
	switch c {
	case InvalidResponse, EmptyResponse, RequestFailed, CannotMakeRequest,
		AttachmentsNotSupportedWithMethod, MalformedAttachmentList, AttachmentFileNotReadable:
		return true
	}
	return false
}
