package domain

import (
	"os"
	"strings"

	"github.com/goccy/go-json"
)

// DefaultCategory is used when classification finds no match or the
// category table is empty.
const DefaultCategory = "Personal"

// Well-known category names referenced by the decision rules and the
// importance scorer. The table itself is data; these are the names the
// rule engine keys on.
const (
	CategoryWork         = "Work"
	CategoryPersonal     = "Personal"
	CategoryFinancial    = "Financial"
	CategorySupport      = "Support"
	CategoryAnnouncement = "Announcement"
	CategoryNewsletter   = "Newsletter"
	CategorySpam         = "Spam"
)

// Category is one entry of the externally supplied classification table.
type Category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Weight   int      `json:"weight"`
}

// CategoryTable is the read-only category configuration, loaded once at
// process start and safe for unsynchronized concurrent reads.
type CategoryTable struct {
	Categories []Category `json:"categories"`
}

// Names returns the category names in table order.
func (t *CategoryTable) Names() []string {
	names := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		names = append(names, c.Name)
	}
	return names
}

// IsEmpty reports whether the table carries no categories.
func (t *CategoryTable) IsEmpty() bool {
	return t == nil || len(t.Categories) == 0
}

// LoadCategoryTable reads the category table from a JSON file. A missing or
// unreadable file yields the built-in default table; the pipeline must keep
// working without external configuration.
func LoadCategoryTable(path string) *CategoryTable {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultCategoryTable()
	}

	var table CategoryTable
	if err := json.Unmarshal(data, &table); err != nil || table.IsEmpty() {
		return DefaultCategoryTable()
	}
	return &table
}

// DefaultCategoryTable returns the built-in category set.
func DefaultCategoryTable() *CategoryTable {
	return &CategoryTable{
		Categories: []Category{
			{
				Name:     CategoryWork,
				Keywords: []string{"meeting", "project", "deadline", "report", "budget", "client", "presentation", "review"},
				Weight:   30,
			},
			{
				Name:     CategoryFinancial,
				Keywords: []string{"invoice", "payment", "bank", "statement", "transaction", "receipt", "bill", "balance"},
				Weight:   25,
			},
			{
				Name:     CategorySupport,
				Keywords: []string{"ticket", "support", "issue", "resolved", "troubleshoot", "assistance", "help desk"},
				Weight:   20,
			},
			{
				Name:     CategoryAnnouncement,
				Keywords: []string{"announcement", "notice", "update", "release", "launch", "policy"},
				Weight:   15,
			},
			{
				Name:     CategoryPersonal,
				Keywords: []string{"birthday", "dinner", "weekend", "family", "friend", "party", "vacation"},
				Weight:   10,
			},
			{
				Name:     CategoryNewsletter,
				Keywords: []string{"newsletter", "unsubscribe", "digest", "weekly", "subscription", "edition"},
				Weight:   5,
			},
			{
				Name:     CategorySpam,
				Keywords: []string{"winner", "lottery", "prize", "claim now", "free money", "viagra", "act now"},
				Weight:   0,
			},
		},
	}
}

// =============================================================================
// Reply Templates
// =============================================================================

// ReplyTemplate holds the three fallback reply drafts for one category.
// Placeholders {sender} and {subject} are interpolated at generation time.
type ReplyTemplate struct {
	Brief    string `json:"brief"`
	Standard string `json:"standard"`
	Detailed string `json:"detailed"`
}

// ReplyTemplateTable maps category name to fallback template. Loaded once,
// never mutated.
type ReplyTemplateTable struct {
	Templates map[string]ReplyTemplate `json:"templates"`
}

// ForCategory returns the template for a category, or the generic template
// when the category has none.
func (t *ReplyTemplateTable) ForCategory(category string) ReplyTemplate {
	if t != nil {
		if tpl, ok := t.Templates[category]; ok {
			return tpl
		}
		// Announcements share the Newsletter template.
		if category == CategoryAnnouncement {
			if tpl, ok := t.Templates[CategoryNewsletter]; ok {
				return tpl
			}
		}
		if tpl, ok := t.Templates["default"]; ok {
			return tpl
		}
	}
	return DefaultReplyTemplateTable().Templates["default"]
}

// Render interpolates sender and subject into a template string.
func RenderTemplate(text, sender, subject string) string {
	text = strings.ReplaceAll(text, "{sender}", sender)
	return strings.ReplaceAll(text, "{subject}", subject)
}

// LoadReplyTemplateTable reads the reply-template table from a JSON file,
// falling back to the built-in templates when the file is absent or broken.
func LoadReplyTemplateTable(path string) *ReplyTemplateTable {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultReplyTemplateTable()
	}

	var table ReplyTemplateTable
	if err := json.Unmarshal(data, &table); err != nil || len(table.Templates) == 0 {
		return DefaultReplyTemplateTable()
	}
	return &table
}

// DefaultReplyTemplateTable returns the built-in Vietnamese templates used
// when the generative service cannot produce a reply.
func DefaultReplyTemplateTable() *ReplyTemplateTable {
	return &ReplyTemplateTable{
		Templates: map[string]ReplyTemplate{
			CategoryWork: {
				Brief:    "Cảm ơn email về '{subject}'. Tôi đã xem xét nội dung và sẽ thực hiện các bước cần thiết. Nếu có thắc mắc gì, tôi sẽ liên hệ lại ngay.",
				Standard: "Kính gửi {sender},\n\nCảm ơn bạn đã gửi email về '{subject}'. Tôi đã nắm được các yêu cầu và sẽ ưu tiên xử lý trong thời gian sớm nhất. Dự kiến hoàn thành trong vòng 1-2 ngày làm việc.\n\nNếu có bất kỳ thông tin bổ sung nào, vui lòng cho tôi biết.\n\nTrân trọng",
				Detailed: "Kính gửi {sender},\n\nCảm ơn bạn đã gửi email về '{subject}'.\n\nTôi đã xem xét kỹ các nội dung và yêu cầu trong email. Tôi hiểu đây là vấn đề quan trọng và sẽ ưu tiên xử lý ngay.\n\nKế hoạch của tôi:\n1. Xem xét chi tiết các tài liệu/thông tin liên quan\n2. Thực hiện các hành động cần thiết\n3. Cập nhật tiến độ cho bạn trong vòng 1-2 ngày\n\nNếu có bất kỳ thông tin bổ sung hoặc yêu cầu gấp, đừng ngại liên hệ trực tiếp với tôi.\n\nTrân trọng",
			},
			CategoryPersonal: {
				Brief:    "Chào {sender}! Cảm ơn bạn đã nhắn. Về '{subject}', mình đồng ý và sẽ sắp xếp phù hợp. Hẹn sớm gặp lại bạn nhé!",
				Standard: "Chào {sender},\n\nCảm ơn bạn đã gửi tin nhắn! Về '{subject}', mình rất vui và sẽ cố gắng sắp xếp thời gian phù hợp.\n\nMình sẽ xác nhận lại với bạn trong thời gian sớm nhất nhé. Nếu có gì thay đổi, mình sẽ báo bạn trước.\n\nHẹn sớm gặp lại!",
				Detailed: "Chào {sender},\n\nRất vui khi nhận được tin nhắn của bạn về '{subject}'!\n\nMình đã đọc kỹ nội dung và thấy rất hay. Mình hoàn toàn đồng ý với đề xuất của bạn và sẽ sắp xếp thời gian phù hợp nhất.\n\nMình sẽ kiểm tra lịch trình và xác nhận lại với bạn trong hôm nay hoặc ngày mai. Nếu có bất kỳ thay đổi nào, mình sẽ báo bạn biết trước.\n\nCảm ơn bạn đã nghĩ đến mình. Hẹn sớm gặp lại nhé!",
			},
			CategoryFinancial: {
				Brief:    "Đã nhận được thông báo về '{subject}'. Tôi sẽ kiểm tra và thanh toán đúng hạn. Cảm ơn đã nhắc nhở.",
				Standard: "Kính gửi,\n\nCảm ơn đã gửi thông báo về '{subject}'.\n\nTôi đã ghi nhận thông tin và sẽ thực hiện thanh toán đúng hạn như yêu cầu. Nếu có bất kỳ vấn đề gì phát sinh, tôi sẽ liên hệ trực tiếp.\n\nTrân trọng",
				Detailed: "Kính gửi,\n\nCảm ơn đã gửi thông báo về '{subject}'.\n\nTôi đã nhận được và ghi nhận đầy đủ các thông tin:\n- Số tiền cần thanh toán\n- Thời hạn thanh toán\n- Phương thức thanh toán\n\nTôi sẽ thực hiện thanh toán đúng hạn qua phương thức đã đăng ký. Nếu có bất kỳ thay đổi hoặc vấn đề gì phát sinh, tôi sẽ liên hệ trực tiếp với bộ phận hỗ trợ.\n\nTrân trọng",
			},
			CategorySupport: {
				Brief:    "Cảm ơn đã hỗ trợ về '{subject}'. Thông tin rất hữu ích. Nếu cần thêm hỗ trợ, tôi sẽ liên hệ lại.",
				Standard: "Xin chào,\n\nCảm ơn đội ngũ hỗ trợ đã gửi thông tin về '{subject}'.\n\nThông tin bạn cung cấp rất hữu ích và giúp tôi giải quyết được vấn đề. Nếu có bất kỳ thắc mắc gì thêm, tôi sẽ liên hệ lại.\n\nCảm ơn sự hỗ trợ nhiệt tình!",
				Detailed: "Xin chào,\n\nCảm ơn đội ngũ hỗ trợ đã gửi thông tin chi tiết về '{subject}'.\n\nTôi đã đọc kỹ hướng dẫn và thông tin bạn cung cấp. Các bước giải quyết rất rõ ràng và giúp tôi hiểu rõ hơn về vấn đề đang gặp phải.\n\nTôi sẽ thực hiện theo hướng dẫn và theo dõi tình hình. Nếu vấn đề vẫn còn hoặc có thắc mắc gì thêm, tôi sẽ liên hệ lại với đội hỗ trợ.\n\nCảm ơn sự hỗ trợ nhiệt tình và chuyên nghiệp!",
			},
			CategoryNewsletter: {
				Brief:    "Cảm ơn đã chia sẻ thông tin về '{subject}'. Nội dung rất hữu ích và thú vị!",
				Standard: "Xin chào,\n\nCảm ơn đã gửi thông tin về '{subject}'.\n\nNội dung rất hữu ích và cập nhật. Tôi đánh giá cao việc được nhận những thông tin chất lượng như vậy.\n\nMong được tiếp tục nhận những bản tin trong tương lai!",
				Detailed: "Xin chào,\n\nCảm ơn đã gửi thông tin về '{subject}'.\n\nNội dung rất hữu ích và cập nhật. Tôi đánh giá cao việc được nhận những thông tin chất lượng như vậy.\n\nMong được tiếp tục nhận những bản tin trong tương lai!",
			},
			"default": {
				Brief:    "Đã nhận được email về '{subject}'. Cảm ơn.",
				Standard: "Xin chào,\n\nĐã nhận được email của bạn về '{subject}'.\n\nCảm ơn đã gửi thông tin. Nếu có nội dung liên quan đến tôi, tôi sẽ xem xét và phản hồi khi cần thiết.\n\nTrân trọng",
				Detailed: "Xin chào,\n\nĐã nhận được email của bạn về '{subject}'.\n\nCảm ơn đã gửi thông tin. Nếu có nội dung liên quan đến tôi, tôi sẽ xem xét và phản hồi khi cần thiết.\n\nTrân trọng",
			},
		},
	}
}
