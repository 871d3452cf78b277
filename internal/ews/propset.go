package ews

// PropertySet 描述一次取回应包含的属性。
type PropertySet struct {
	IDOnly     bool
	Properties []string
}

// MessageProperties 邮件条目属性集。
var MessageProperties = PropertySet{
	Properties: []string{
		"ItemClass",
		"Size",
		"Sender",
		"Subject",
		"ConversationId",
		"ConversationTopic",
		"IsRead",
		"From",
		"ToRecipients",
		"CcRecipients",
		"ReceivedBy",
		"ReceivedRepresenting",
		"DateTimeSent",
		"DateTimeCreated",
		"Importance",
		"MimeContent",
		"Body",
		"Attachments",
		"Id",
		"WebClientReadFormQueryString",
	},
}

// EventProperties 日历条目属性集，在邮件属性之上增加日程字段。
var EventProperties = PropertySet{
	Properties: append(append([]string{}, MessageProperties.Properties...),
		"Start",
		"End",
		"Location",
		"IsRecurring",
		"IsCancelled",
		"RequiredAttendees",
		"OptionalAttendees",
		"Organizer",
		"ResponseType",
		"ReminderIsSet",
		"ReminderMinutesBeforeStart",
		"ReminderDueBy",
	),
}

// UserProperties 目录联系人属性集。
var UserProperties = PropertySet{
	Properties: []string{
		"DisplayName",
		"GivenName",
		"Surname",
		"CompleteName",
		"CompanyName",
		"EmailAddress",
		"EmailAddresses",
		"PhysicalAddresses",
		"PhoneNumbers",
		"JobTitle",
		"Department",
		"OfficeLocation",
		"Manager",
		"ManagerMailbox",
		"DirectReports",
		"Photo",
		"HasPicture",
		"Alias",
		"Notes",
		"Attachments",
		"Id",
		"ItemClass",
	},
}

// AppointmentProperties 日程视图属性集，只取答复状态相关字段。
var AppointmentProperties = PropertySet{
	Properties: []string{
		"MyResponseType",
		"Start",
		"End",
		"Id",
	},
}
