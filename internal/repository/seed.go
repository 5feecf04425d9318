package repository

import "legal-chatbot/internal/domain"

// seedCorpus returns the built-in reference texts for the North Macedonia
// jurisdiction, one set per supported language.
func seedCorpus() []domain.LegalDocument {
	return []domain.LegalDocument{
		{
			ID:       "en-vat-registration",
			Language: domain.LanguageEnglish,
			Topic:    "VAT",
			Title:    "VAT Registration",
			Body: "Businesses whose total turnover in the previous calendar year exceeded " +
				"2,000,000 denars are obliged to register for value added tax. The " +
				"registration application must be submitted to the Public Revenue Office " +
				"within 15 days of exceeding the threshold. Voluntary registration is " +
				"possible below the threshold and binds the taxpayer for at least five " +
				"calendar years. The standard VAT rate is 18 percent, with a preferential " +
				"rate of 5 percent for certain goods and services.",
		},
		{
			ID:       "en-company-registration",
			Language: domain.LanguageEnglish,
			Topic:    "business-registration",
			Title:    "Company Registration",
			Body: "A limited liability company (DOO) or a single-member limited liability " +
				"company (DOOEL) is registered with the Central Registry of the Republic " +
				"of North Macedonia through the one-stop-shop system. The minimum founding " +
				"capital is 5,000 euros in denar counter-value, which may be paid in within " +
				"one year of registration. Registration is completed electronically by a " +
				"registration agent and usually takes up to four working days.",
		},
		{
			ID:       "en-annual-accounts",
			Language: domain.LanguageEnglish,
			Topic:    "accounting",
			Title:    "Annual Accounts and Financial Statements",
			Body: "All companies must prepare an annual account and submit it to the " +
				"Central Registry by the end of February for the previous business year, " +
				"or by March 15 if submitted electronically. Medium and large traders must " +
				"additionally prepare financial statements in accordance with the adopted " +
				"accounting standards and have them audited when the statutory thresholds " +
				"are met.",
		},
		{
			ID:       "en-personal-income-tax",
			Language: domain.LanguageEnglish,
			Topic:    "tax",
			Title:    "Personal Income Tax",
			Body: "Personal income tax is levied at a flat rate of 10 percent on income " +
				"from employment, self-employment, royalties and capital. Employers " +
				"calculate and withhold the tax through the monthly gross salary " +
				"calculation submitted to the Public Revenue Office. An annual tax return " +
				"is pre-filled by the Public Revenue Office and must be confirmed or " +
				"corrected by the taxpayer by May 31 of the following year.",
		},
		{
			ID:       "en-employment-contracts",
			Language: domain.LanguageEnglish,
			Topic:    "labor-law",
			Title:    "Employment Contracts",
			Body: "An employment contract must be concluded in written form before the " +
				"employee starts work and registered with the Employment Agency. The " +
				"contract may be concluded for an indefinite or a fixed term; consecutive " +
				"fixed-term contracts with the same employer may not exceed five years in " +
				"total. Full working time is 40 hours per week and the probation period " +
				"may last at most six months.",
		},
		{
			ID:       "en-profit-tax",
			Language: domain.LanguageEnglish,
			Topic:    "tax",
			Title:    "Corporate Profit Tax",
			Body: "Corporate profit tax is payable at a rate of 10 percent on the profit " +
				"determined in the tax balance. Companies with annual income up to " +
				"3,000,000 denars are exempt, and companies with income between 3,000,001 " +
				"and 6,000,000 denars may opt for a simplified regime of 1 percent tax on " +
				"total income. The profit tax return is filed by the end of February or " +
				"March 15 for electronic submission.",
		},
		{
			ID:       "mk-vat-registration",
			Language: domain.LanguageMacedonian,
			Topic:    "VAT",
			Title:    "Регистрација за ДДВ",
			Body: "Даночните обврзници чиј вкупен промет во претходната календарска " +
				"година надминал 2.000.000 денари се должни да се регистрираат за данок " +
				"на додадена вредност. Пријавата за регистрација се поднесува до Управата " +
				"за јавни приходи во рок од 15 дена од надминувањето на прагот. Можна е " +
				"доброволна регистрација под прагот, која го обврзува обврзникот најмалку " +
				"пет календарски години. Општата стапка на ДДВ изнесува 18 отсто, а " +
				"повластената стапка 5 отсто за определени добра и услуги.",
		},
		{
			ID:       "mk-company-registration",
			Language: domain.LanguageMacedonian,
			Topic:    "business-registration",
			Title:    "Регистрација на трговско друштво",
			Body: "Друштво со ограничена одговорност (ДОО) или друштво со ограничена " +
				"одговорност основано од едно лице (ДООЕЛ) се регистрира во Централниот " +
				"регистар на Република Северна Македонија преку едношалтерскиот систем. " +
				"Минималната основна главнина изнесува 5.000 евра во денарска " +
				"противвредност и може да се уплати во рок од една година од " +
				"регистрацијата. Регистрацијата се врши електронски преку регистрационен " +
				"агент и вообичаено трае до четири работни дена.",
		},
		{
			ID:       "mk-annual-accounts",
			Language: domain.LanguageMacedonian,
			Topic:    "accounting",
			Title:    "Годишна сметка и финансиски извештаи",
			Body: "Сите трговски друштва се должни да изготват годишна сметка и да ја " +
				"достават до Централниот регистар најдоцна до крајот на февруари за " +
				"претходната деловна година, односно до 15 март при електронско " +
				"поднесување. Средните и големите трговци дополнително изготвуваат " +
				"финансиски извештаи согласно усвоените сметководствени стандарди и " +
				"подлежат на ревизија кога се исполнети законските прагови.",
		},
		{
			ID:       "mk-personal-income-tax",
			Language: domain.LanguageMacedonian,
			Topic:    "tax",
			Title:    "Персонален данок на доход",
			Body: "Персоналниот данок на доход се пресметува по единствена стапка од 10 " +
				"отсто на доходот од работа, самостојна дејност, авторски права и " +
				"капитал. Работодавачот го пресметува и задржува данокот преку месечната " +
				"пресметка за бруто плата што се доставува до Управата за јавни приходи. " +
				"Годишната даночна пријава ја пополнува Управата за јавни приходи, а " +
				"обврзникот ја потврдува или коригира најдоцна до 31 мај следната година.",
		},
		{
			ID:       "mk-employment-contracts",
			Language: domain.LanguageMacedonian,
			Topic:    "labor-law",
			Title:    "Договор за вработување",
			Body: "Договорот за вработување се склучува во писмена форма пред " +
				"работникот да стапи на работа и се пријавува во Агенцијата за " +
				"вработување. Договорот може да се склучи на неопределено или определено " +
				"време, при што последователните договори на определено време кај ист " +
				"работодавач не смеат да надминат вкупно пет години. Полното работно " +
				"време изнесува 40 часа неделно, а пробната работа може да трае најмногу " +
				"шест месеци.",
		},
		{
			ID:       "mk-profit-tax",
			Language: domain.LanguageMacedonian,
			Topic:    "tax",
			Title:    "Данок на добивка",
			Body: "Данокот на добивка се плаќа по стапка од 10 отсто на добивката " +
				"утврдена во даночниот биланс. Друштвата со вкупен приход до 3.000.000 " +
				"денари годишно се ослободени од данок, а друштвата со приход од " +
				"3.000.001 до 6.000.000 денари можат да изберат поедноставен режим со 1 " +
				"отсто данок на вкупниот приход. Даночниот биланс се поднесува до крајот " +
				"на февруари, односно до 15 март при електронско поднесување.",
		},
	}
}
