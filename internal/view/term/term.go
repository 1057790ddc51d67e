// Package term renders the view models on the terminal with pterm.
package term

import (
	"strings"

	"github.com/pterm/pterm"

	"facultyjobs/internal/view"
)

type Presenter struct{}

func NewPresenter() *Presenter {
	return &Presenter{}
}

func (p *Presenter) RenderListing(l view.Listing) {
	pterm.DefaultHeader.Println("Faculty Jobs")

	pterm.Printfln("departments: %s", strings.Join(l.AvailableDepartments, " | "))
	pterm.Printfln("levels: %s", strings.Join(l.AvailableLevels, " | "))
	if l.SearchQuery != "" || len(l.SelectedDepartments) > 0 || len(l.SelectedLevels) > 0 {
		pterm.Info.Printfln("filters: search=%q departments=%v levels=%v",
			l.SearchQuery, l.SelectedDepartments, l.SelectedLevels)
	}

	p.renderBucket("Open Positions", l.Open, l.EmptyMessage)
	p.renderBucket("Closing Soon", l.ClosingSoon, "")
	p.renderBucket("Archived", l.Archived, "")
}

func (p *Presenter) renderBucket(title string, cards []view.Card, emptyMessage string) {
	pterm.DefaultSection.Println(title)
	if len(cards) == 0 {
		if emptyMessage != "" {
			pterm.Println(pterm.Gray(emptyMessage))
		}
		return
	}

	data := pterm.TableData{{"Title", "Institution", "Chips", "Deadline", "Saved"}}
	for _, c := range cards {
		saved := ""
		if c.Saved {
			saved = "saved"
		}
		chips := strings.Join(append(append([]string{}, c.DepartmentChips...), c.LevelChips...), ", ")
		data = append(data, []string{c.Title, c.InstitutionLine, chips, c.Deadline, saved})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

func (p *Presenter) RenderDetail(d view.Detail) {
	pterm.DefaultSection.Println(d.Title)
	pterm.Println(d.InstitutionLine)
	pterm.Printfln("Departments: %s", strings.Join(d.Departments, ", "))
	pterm.Printfln("Levels: %s", strings.Join(d.Levels, ", "))
	if d.Deadline != "" {
		pterm.Printfln("Deadline: %s", d.Deadline)
	}
	pterm.Println(d.Description)
	if d.ApplicationLink != "" {
		pterm.Printfln("Apply: %s", d.ApplicationLink)
	}
}

func (p *Presenter) RenderPreview(c view.Card) {
	pterm.DefaultSection.Println("Preview")
	pterm.Println(pterm.Bold.Sprint(c.Title))
	pterm.Println(c.InstitutionLine)
	pterm.Println(c.Description)
	if c.Deadline != "" {
		pterm.Printfln("Deadline: %s", c.Deadline)
	}
}

func (p *Presenter) RenderAdmin(a view.Admin) {
	pterm.DefaultHeader.Println("Admin Dashboard")

	pterm.DefaultSection.Println("Pending")
	for _, row := range a.Pending {
		pterm.Printfln("%s  [approve] [archive]", row.Summary)
	}

	pterm.DefaultSection.Println("Approved")
	for _, row := range a.Approved {
		pterm.Printfln("%s  [archive]", row.Summary)
	}

	pterm.DefaultSection.Println("Users")
	data := pterm.TableData{{"Email", "Name", "Role", "Trust"}}
	for _, u := range a.Users {
		data = append(data, []string{u.Email, u.DisplayName, string(u.Role), pterm.Sprintf("%d", u.TrustLevel)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}

	pterm.DefaultSection.Println("Config")
	pterm.Printfln("policy=%s trusted_min_level=%d", a.Config.Policy, a.Config.TrustedEmployerMinLevel)
}

func (p *Presenter) Notify(n view.Notice) {
	switch n.Level {
	case view.NoticeSuccess:
		pterm.Success.Println(n.Message)
	case view.NoticeError:
		pterm.Error.Println(n.Message)
	default:
		pterm.Info.Println(n.Message)
	}
}
